package formdata

import (
	"slices"

	perr "deploytrack/internal/platform/errors"
)

// DefaultHost is used when a Resolver has no host configured
const DefaultHost = "studio.example.com"

// Link is one resolved form id
type Link struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	URL   string `json:"url"`
}

// Resolution splits ids into resolved links and unresolved ids, both sorted by id
type Resolution struct {
	Total      int      `json:"total"`
	Resolved   []Link   `json:"resolved"`
	Unresolved []string `json:"unresolved"`
}

// Resolver builds Data Manager table links for a deployment host
type Resolver struct {
	Host    string
	Mapping Mapping
}

// URL returns https://<host>/#/form-data/table/<group>/<id>
func (r Resolver) URL(group, id string) string {
	host := r.Host
	if host == "" {
		host = DefaultHost
	}
	return "https://" + host + "/#/form-data/table/" + group + "/" + id
}

// Resolve looks every id up in the mapping; duplicates are collapsed
func (r Resolver) Resolve(ids []string) Resolution {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	res := Resolution{Total: len(ids), Resolved: []Link{}, Unresolved: []string{}}
	for _, id := range ids {
		if g, ok := r.Mapping[id]; ok {
			res.Resolved = append(res.Resolved, Link{ID: id, Group: g, URL: r.URL(g, id)})
			continue
		}
		res.Unresolved = append(res.Unresolved, id)
	}
	return res
}

// Find decodes raw JSON, extracts the form ids and resolves them
func Find(raw []byte, r Resolver) (Resolution, error) {
	v, err := Decode(raw)
	if err != nil {
		return Resolution{}, err
	}
	return r.Resolve(Extract(v)), nil
}

// IsInvalidInput reports whether err came from a malformed document
func IsInvalidInput(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeJSON)
}
