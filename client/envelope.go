package client

// Meta is the paging block of a list response. HasNext and HasPrevious
// are pointers so a server that omits them can be told apart from one
// that sent false; Normalize derives them from count/offset/limit when
// absent.
type Meta struct {
	Count       int   `json:"count"`
	Offset      int   `json:"offset"`
	Limit       int   `json:"limit"`
	HasNext     *bool `json:"has_next,omitempty"`
	HasPrevious *bool `json:"has_previous,omitempty"`
}

// Normalize fills in the derived paging flags:
// has_next when offset+limit < count, has_previous when offset > 0.
// Flags the server already sent are left untouched.
func (m *Meta) Normalize() {
	if m == nil {
		return
	}
	if m.HasNext == nil {
		v := m.Offset+m.Limit < m.Count
		m.HasNext = &v
	}
	if m.HasPrevious == nil {
		v := m.Offset > 0
		m.HasPrevious = &v
	}
}

// Next reports whether another page exists.
func (m *Meta) Next() bool {
	if m == nil {
		return false
	}
	m.Normalize()
	return *m.HasNext
}

// Previous reports whether an earlier page exists.
func (m *Meta) Previous() bool {
	if m == nil {
		return false
	}
	m.Normalize()
	return *m.HasPrevious
}

// Envelope is the canonical list response shape.
type Envelope[T any] struct {
	Resource []T   `json:"resource"`
	Meta     *Meta `json:"meta,omitempty"`
}
