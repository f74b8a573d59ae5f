package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process in system.query_log: product and tag,
// role, go version, vcs revision and host
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	info := clickhouse.ClientInfo{}
	add := func(name, version string) {
		info.Products = append(info.Products, struct{ Name, Version string }{name, strings.TrimSpace(version)})
	}
	add("deploytrack", tag)
	add("role", role)
	add("go", runtime.Version())
	add("commit", revision())
	add("host", host)
	return info
}

func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
