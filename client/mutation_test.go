package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCache(cache QueryCache) (appList, appGet, roleList string) {
	appList = Key("app", "list", url.Values{"limit": {"50"}})
	appGet = Key("app", "get", url.Values{"id": {"7"}})
	roleList = Key("role", "list", url.Values{"limit": {"50"}})

	cache.Set(appList, []byte(`{"resource":[{"id":7,"name":"portal"}]}`))
	cache.Set(appGet, []byte(`{"id":7,"name":"portal"}`))
	cache.Set(roleList, []byte(`{"resource":[{"id":1}]}`))
	return
}

func TestRollbackRestoresSnapshotVerbatim(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	appList, appGet, roleList := seedCache(cache)

	before := map[string]any{}
	for _, k := range cache.Keys() {
		v, _ := cache.Get(k)
		before[k] = v
	}

	tx := q.BeginMutation("app")
	tx.Apply(appList, []byte(`{"resource":[{"id":7,"name":"renamed"}]}`))
	tx.Apply(appGet, []byte(`{"id":7,"name":"renamed"}`))
	tx.Apply(Key("app", "get", url.Values{"id": {"99"}}), []byte(`{"id":99}`))
	tx.Rollback()

	after := map[string]any{}
	for _, k := range cache.Keys() {
		v, _ := cache.Get(k)
		after[k] = v
	}
	assert.Equal(t, before, after)

	v, ok := cache.Get(roleList)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"resource":[{"id":1}]}`), v)
}

func TestCommitInvalidatesOnlyOwnDomain(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	appList, appGet, roleList := seedCache(cache)

	tx := q.BeginMutation("app")
	tx.Apply(appGet, []byte(`{"id":7,"name":"renamed"}`))
	tx.Commit()

	_, ok := cache.Get(appList)
	assert.False(t, ok)
	_, ok = cache.Get(appGet)
	assert.False(t, ok)
	_, ok = cache.Get(roleList)
	assert.True(t, ok)
}

func TestApplyRejectsForeignDomainKeys(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	_, _, roleList := seedCache(cache)

	tx := q.BeginMutation("app")
	tx.Apply(roleList, []byte(`{"resource":[]}`))

	v, ok := cache.Get(roleList)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"resource":[{"id":1}]}`), v)
	tx.Rollback()
}

func TestTxIsSingleUse(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	appList, _, _ := seedCache(cache)

	tx := q.BeginMutation("app")
	tx.Rollback()

	// Commit after Rollback must not invalidate anything.
	tx.Commit()
	_, ok := cache.Get(appList)
	assert.True(t, ok)
}

func TestMutateRollsBackOnFailure(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	_, appGet, _ := seedCache(cache)

	err := q.Mutate(context.Background(), "app",
		func(tx *MutationTx) {
			tx.Apply(appGet, []byte(`{"id":7,"name":"optimistic"}`))
		},
		func(ctx context.Context) error {
			return errors.New("boom")
		},
	)
	require.Error(t, err)

	v, ok := cache.Get(appGet)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"id":7,"name":"portal"}`), v)
}

func TestMutateCommitsOnSuccess(t *testing.T) {
	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New("http://unused"), cache)
	_, appGet, roleList := seedCache(cache)

	err := q.Mutate(context.Background(), "app", nil, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	_, ok := cache.Get(appGet)
	assert.False(t, ok)
	_, ok = cache.Get(roleList)
	assert.True(t, ok)
}

func TestCreateInvalidatesDomainOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(testApp{ID: 9, Name: "new"})
	}))
	defer srv.Close()

	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New(srv.URL), cache)
	appList, _, roleList := seedCache(cache)

	created, err := Create[testApp](context.Background(), q, "app", "/api/v2/system/app", map[string]any{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	_, ok := cache.Get(appList)
	assert.False(t, ok)
	_, ok = cache.Get(roleList)
	assert.True(t, ok)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMutationFailureNeverRetriesAndKeepsCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 500, "message": "db down"},
		})
	}))
	defer srv.Close()

	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New(srv.URL), cache)
	appList, _, _ := seedCache(cache)

	_, err := Update[testApp](context.Background(), q, "app", "/api/v2/system/app", 7, map[string]any{"name": "x"})
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, ae.Kind)
	// even a retryable kind gets exactly one call on the mutation path
	assert.Equal(t, int32(1), hits.Load())

	_, ok = cache.Get(appList)
	assert.True(t, ok)
}

func TestDeleteInvalidatesDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v2/system/app/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int64{"id": 7})
	}))
	defer srv.Close()

	cache := NewLRUCache(16, time.Minute)
	q := NewQueries(New(srv.URL), cache)
	appList, appGet, _ := seedCache(cache)

	require.NoError(t, Delete(context.Background(), q, "app", "/api/v2/system/app", 7))

	_, ok := cache.Get(appList)
	assert.False(t, ok)
	_, ok = cache.Get(appGet)
	assert.False(t, ok)
}
