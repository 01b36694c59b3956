package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaNormalizeFirstPage(t *testing.T) {
	m := &Meta{Count: 120, Offset: 0, Limit: 50}
	m.Normalize()

	assert.True(t, *m.HasNext)
	assert.False(t, *m.HasPrevious)
}

func TestMetaNormalizeLastPage(t *testing.T) {
	m := &Meta{Count: 120, Offset: 100, Limit: 50}
	m.Normalize()

	assert.False(t, *m.HasNext)
	assert.True(t, *m.HasPrevious)
}

func TestMetaNormalizeExactBoundary(t *testing.T) {
	// offset+limit == count means the page ends exactly at the total.
	m := &Meta{Count: 100, Offset: 50, Limit: 50}
	m.Normalize()

	assert.False(t, *m.HasNext)
	assert.True(t, *m.HasPrevious)
}

func TestMetaNormalizeKeepsServerFlags(t *testing.T) {
	// A server-sent flag wins even when it disagrees with the math.
	yes := true
	m := &Meta{Count: 10, Offset: 0, Limit: 50, HasNext: &yes}
	m.Normalize()

	assert.True(t, *m.HasNext)
	assert.False(t, *m.HasPrevious)
}

func TestEnvelopeDecodeWithoutFlags(t *testing.T) {
	raw := `{"resource":[{"id":1},{"id":2}],"meta":{"count":120,"offset":0,"limit":50}}`

	var env Envelope[struct {
		ID int64 `json:"id"`
	}]
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	env.Meta.Normalize()
	assert.Len(t, env.Resource, 2)
	assert.True(t, env.Meta.Next())
	assert.False(t, env.Meta.Previous())
}

func TestMetaNilSafe(t *testing.T) {
	var m *Meta
	m.Normalize()

	assert.False(t, m.Next())
	assert.False(t, m.Previous())
}
