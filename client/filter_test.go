package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuilder(t *testing.T) {
	f := NewFilter().
		Eq("is_active", true).
		Ne("role_id", nil).
		Gt("rate", 100).
		Like("name", "admin%").
		Eq("type", "mysql")

	assert.Equal(t,
		`is_active = true and role_id != null and rate > 100 and name like "admin%" and type = "mysql"`,
		f.String(),
	)
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, "", NewFilter().String())
}

func TestFilterKeepsEmbeddedQuotes(t *testing.T) {
	f := NewFilter().Eq("name", `ad"min`)

	assert.NoError(t, f.Err())
	assert.Equal(t, `name = 'ad"min'`, f.String())
}

func TestFilterValueContainingAnd(t *testing.T) {
	f := NewFilter().Eq("name", "rock and roll")

	assert.NoError(t, f.Err())
	assert.Equal(t, `name = "rock and roll"`, f.String())
}

func TestFilterRejectsUnrepresentableValue(t *testing.T) {
	f := NewFilter().Eq("name", `a"b'c`).Eq("is_active", true)

	assert.Error(t, f.Err())
	assert.Equal(t, "is_active = true", f.String())
}
