package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func fastQueries(c *Client, cache QueryCache) *Queries {
	q := NewQueries(c, cache)
	q.BaseDelay = time.Millisecond
	q.MaxDelay = 5 * time.Millisecond
	return q
}

func TestListCachesSecondRead(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(Envelope[testApp]{
			Resource: []testApp{{ID: 1, Name: "admin"}},
			Meta:     &Meta{Count: 1, Offset: 0, Limit: 50},
		})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))
	p := ListParams{Limit: 50, IncludeCount: true}

	first, err := List[testApp](context.Background(), q, "app", "/api/v2/system/app", p)
	require.NoError(t, err)
	second, err := List[testApp](context.Background(), q, "app", "/api/v2/system/app", p)
	require.NoError(t, err)

	assert.Equal(t, first.Resource, second.Resource)
	assert.Equal(t, int32(1), hits.Load())
}

func TestListRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(Envelope[testApp]{Resource: []testApp{{ID: 1}}})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50})
	require.NoError(t, err)
	_, err = List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50, Refresh: true})
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestListNormalizesPagingFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"resource": []testApp{{ID: 1}},
			"meta":     map[string]int{"count": 120, "offset": 100, "limit": 50},
		})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	env, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50, Offset: 100})
	require.NoError(t, err)
	require.NotNil(t, env.Meta)
	assert.False(t, env.Meta.Next())
	assert.True(t, env.Meta.Previous())
}

func TestAuthorizationErrorNeverRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "admin access required"},
		})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50})
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthorization, ae.Kind)
	assert.False(t, ae.Retryable())
	assert.Equal(t, int32(1), hits.Load())
}

func TestServerErrorRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Envelope[testApp]{Resource: []testApp{{ID: 1}}})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	env, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, env.Resource, 1)
	assert.Equal(t, int32(3), hits.Load())
}

func TestServerErrorRetriesAreBounded(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50})
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, ae.Kind)
	// initial attempt plus 3 retries
	assert.Equal(t, int32(4), hits.Load())
}

func TestConcurrentIdenticalFetchesCoalesce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(Envelope[testApp]{Resource: []testApp{{ID: 1}}})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{Limit: 50})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestGetFetchesByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/system/app/7", r.URL.Path)
		json.NewEncoder(w).Encode(testApp{ID: 7, Name: "portal"})
	}))
	defer srv.Close()

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	app, err := Get[testApp](context.Background(), q, "app", "/api/v2/system/app", 7, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "portal", app.Name)
}

func TestSessionTokenHeaderIsSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get("X-DreamFactory-Session-Token"))
		json.NewEncoder(w).Encode(Envelope[testApp]{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSessionToken("tok-123")
	q := fastQueries(c, NewLRUCache(16, time.Minute))

	_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{})
	require.NoError(t, err)
}

func TestNetworkFailureClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	q := fastQueries(New(srv.URL), NewLRUCache(16, time.Minute))

	_, err := List[testApp](context.Background(), q, "app", "/app", ListParams{})
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, ae.Kind)
	assert.True(t, ae.Retryable())
}
