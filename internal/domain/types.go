package domain

// ID is used across domain entities.
type ID int64

// ListParams carries the query options accepted by every list endpoint.
type ListParams struct {
	Limit        int      `json:"limit"`
	Offset       int      `json:"offset"`
	Sort         string   `json:"sort"`
	Filter       string   `json:"filter"`
	Related      []string `json:"related,omitempty"`
	Fields       []string `json:"fields,omitempty"`
	IncludeCount bool     `json:"include_count"`
	Refresh      bool     `json:"refresh"`
}

// Meta is the pagination block of a list envelope. Count is the
// server-reported total irrespective of the current page slice;
// HasNext and HasPrevious are derived from it.
type Meta struct {
	Count       int  `json:"count"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewMeta derives the pagination flags from the reported total.
func NewMeta(count, offset, limit int) Meta {
	return Meta{
		Count:       count,
		Offset:      offset,
		Limit:       limit,
		HasNext:     offset+limit < count,
		HasPrevious: offset > 0,
	}
}

// Envelope is the canonical list response wrapper.
type Envelope[T any] struct {
	Resource []T   `json:"resource"`
	Meta     *Meta `json:"meta,omitempty"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID     ID     `json:"userId"`
	Email      string `json:"email"`
	IsSysAdmin bool   `json:"isSysAdmin"`
}
