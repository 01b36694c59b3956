package client

import (
	"net/url"
	"strconv"
	"strings"
)

// ListParams mirrors the query params every list endpoint accepts.
// Zero values are omitted from the request.
type ListParams struct {
	Limit        int
	Offset       int
	Sort         string
	Filter       string
	Related      []string
	Fields       []string
	IncludeCount bool
	Refresh      bool
}

// Values encodes the params as url.Values. Refresh is a client-side
// cache directive and never reaches the wire.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	if len(p.Related) > 0 {
		v.Set("related", strings.Join(p.Related, ","))
	}
	if len(p.Fields) > 0 {
		v.Set("fields", strings.Join(p.Fields, ","))
	}
	if p.IncludeCount {
		v.Set("include_count", "true")
	}
	return v
}
