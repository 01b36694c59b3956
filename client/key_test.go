package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIgnoresParamOrder(t *testing.T) {
	a := url.Values{}
	a.Set("limit", "50")
	a.Set("offset", "100")
	a.Set("sort", "name")

	b := url.Values{}
	b.Set("sort", "name")
	b.Set("offset", "100")
	b.Set("limit", "50")

	assert.Equal(t, Key("user", "list", a), Key("user", "list", b))
}

func TestKeyIgnoresValueOrder(t *testing.T) {
	a := url.Values{"related": {"role_by_role_id", "app_by_app_id"}}
	b := url.Values{"related": {"app_by_app_id", "role_by_role_id"}}

	assert.Equal(t, Key("user", "list", a), Key("user", "list", b))
}

func TestKeySeparatesDomainsActionsAndParams(t *testing.T) {
	params := url.Values{"limit": {"50"}}

	assert.NotEqual(t, Key("user", "list", params), Key("role", "list", params))
	assert.NotEqual(t, Key("user", "list", params), Key("user", "get", params))
	assert.NotEqual(t,
		Key("user", "list", url.Values{"limit": {"50"}}),
		Key("user", "list", url.Values{"limit": {"25"}}),
	)
}

func TestMatchesDomainIsExact(t *testing.T) {
	key := Key("app", "list", nil)

	assert.True(t, matchesDomain(key, "app"))
	assert.False(t, matchesDomain(key, "ap"))
	assert.False(t, matchesDomain(Key("app_group", "list", nil), "app"))
}
