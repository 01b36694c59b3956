package client

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidateDomainOnlyTouchesOwnKeys(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)

	appList := Key("app", "list", url.Values{"limit": {"50"}})
	appGet := Key("app", "get", url.Values{"id": {"7"}})
	roleList := Key("role", "list", url.Values{"limit": {"50"}})

	cache.Set(appList, []byte(`{"resource":[]}`))
	cache.Set(appGet, []byte(`{"id":7}`))
	cache.Set(roleList, []byte(`{"resource":[]}`))

	removed := InvalidateDomain(cache, "app")
	assert.Equal(t, 2, removed)

	_, ok := cache.Get(appList)
	assert.False(t, ok)
	_, ok = cache.Get(appGet)
	assert.False(t, ok)

	v, ok := cache.Get(roleList)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"resource":[]}`), v)
}

func TestLRUCacheExpires(t *testing.T) {
	cache := NewLRUCache(4, 20*time.Millisecond)
	cache.Set("user:list:abc", []byte("x"))

	_, ok := cache.Get("user:list:abc")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("user:list:abc")
	assert.False(t, ok)
}
