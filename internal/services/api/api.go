// Package api provides the HTTP API for deploytrack
package api

import (
	"deploytrack/internal/platform/config"
	"deploytrack/internal/platform/logger"
	phttp "deploytrack/internal/platform/net/http"
	"deploytrack/internal/platform/store"

	"deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/modkit/module"
	"deploytrack/internal/modkit/swaggerkit"

	actdom "deploytrack/internal/services/activity/domain"
	actmod "deploytrack/internal/services/activity/module"
	feedmod "deploytrack/internal/services/api/activity/module"
	clientmod "deploytrack/internal/services/api/apiclient/module"
	auditmod "deploytrack/internal/services/api/audittrail/module"
	compmod "deploytrack/internal/services/api/components/module"
	dmlinksmod "deploytrack/internal/services/api/dmlinks/module"
	importsmod "deploytrack/internal/services/api/imports/module"
	metamod "deploytrack/internal/services/api/meta/module"
)

// Options are the API options. Config is the unprefixed root view
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted is what the caller needs after routes are in place
type Mounted struct {
	// Worker flushes the activity log and must be run alongside the server
	Worker     actdom.WorkerPort
	Components *compmod.Module
}

// Mount builds every module and mounts it under /api/v1.
// Everything but meta sits behind CORE_API_TOKEN when one is set
func Mount(r phttp.Router, opt Options) Mounted {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}
	deps := modkit.FromStore(opt.Store, opt.Config, *log)
	apiCfg := opt.Config.Prefix("CORE_API_")

	// activity first, every writer records through its ports
	activity := actmod.New(deps)
	act := module.MustPortsOf[actmod.Ports](activity)

	components := compmod.New(deps, modkit.WithPorts(compmod.Ports{Recorder: act.Recorder}))
	creator := module.MustPortsOf[compmod.Exposed](components).Service

	meta := metamod.New(deps)
	protected := module.NewSet(
		components,
		importsmod.New(deps, modkit.WithPorts(importsmod.Ports{Creator: creator, Recorder: act.Recorder})),
		dmlinksmod.New(deps),
		clientmod.New(deps, modkit.WithPorts(clientmod.Ports{Recorder: act.Recorder})),
		auditmod.New(deps),
		feedmod.New(deps, modkit.WithPorts(feedmod.Ports{Reader: act.Reader})),
	)
	log.Debug().Strs("modules", protected.Names()).Msg("api modules built")

	token := httpkit.NewTokenPort(apiCfg.MayString("TOKEN", ""), "")
	if token == nil {
		log.Warn().Msg("CORE_API_TOKEN not set, API is open")
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(apiCfg)), func(api httpkit.Router) {
		meta.MountRoutes(api)
		httpkit.Protected(api, token, func(pr httpkit.Router) {
			protected.MountRoutes(pr)
		})
	})

	return Mounted{Worker: act.Worker, Components: components}
}
