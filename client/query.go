package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// Queries reads resources through a cache with in-flight request
// coalescing. Identical concurrent fetches share one HTTP call, and
// transient failures are retried with capped exponential backoff.
// Mutations (see mutation.go) are never retried.
type Queries struct {
	Client *Client
	Cache  QueryCache

	// Backoff knobs, mostly for tests. Zero values mean the defaults:
	// 1s base doubling per attempt, capped at 30s, at most 3 retries.
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries uint64

	group singleflight.Group
}

// NewQueries wires a client to a cache. Pass a shared cache to let
// several Queries instances see each other's results.
func NewQueries(c *Client, cache QueryCache) *Queries {
	if cache == nil {
		cache = NewLRUCache(0, 0)
	}
	return &Queries{Client: c, Cache: cache}
}

func (q *Queries) backoff() retry.Backoff {
	base := q.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	ceiling := q.MaxDelay
	if ceiling <= 0 {
		ceiling = 30 * time.Second
	}
	retries := q.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return retry.WithMaxRetries(retries, retry.WithCappedDuration(ceiling, retry.NewExponential(base)))
}

// fetch returns the raw body for key, reading the cache first unless
// refresh is set. Concurrent callers with the same key are coalesced
// onto a single request.
func (q *Queries) fetch(ctx context.Context, key, path string, query url.Values, refresh bool) ([]byte, error) {
	if !refresh {
		if cached, ok := q.Cache.Get(key); ok {
			if raw, ok := cached.([]byte); ok {
				return raw, nil
			}
		}
	}

	v, err, _ := q.group.Do(key, func() (any, error) {
		raw, err := q.getWithRetry(ctx, path, query)
		if err != nil {
			return nil, err
		}
		q.Cache.Set(key, raw)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// getWithRetry retries transient failures only. A non-retryable error
// (any 4xx) aborts immediately with zero additional network calls.
func (q *Queries) getWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var body []byte
	err := retry.Do(ctx, q.backoff(), func(ctx context.Context) error {
		raw, err := q.Client.getRaw(ctx, path, query)
		if err != nil {
			if ae, ok := AsAPIError(err); ok && ae.Retryable() {
				return retry.RetryableError(err)
			}
			return err
		}
		body = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// List fetches one page of a resource collection. The result envelope
// always carries normalized paging flags when meta is present.
func List[T any](ctx context.Context, q *Queries, domain, path string, p ListParams) (Envelope[T], error) {
	var env Envelope[T]

	values := p.Values()
	key := Key(domain, "list", values)

	raw, err := q.fetch(ctx, key, path, values, p.Refresh)
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, &APIError{Kind: KindUnknown, Message: "decode list response: " + err.Error()}
	}
	env.Meta.Normalize()
	return env, nil
}

// Get fetches a single record by id.
func Get[T any](ctx context.Context, q *Queries, domain, path string, id int64, p ListParams) (T, error) {
	var out T

	values := p.Values()
	values.Set("id", strconv.FormatInt(id, 10))
	key := Key(domain, "get", values)
	values.Del("id")

	raw, err := q.fetch(ctx, key, path+"/"+strconv.FormatInt(id, 10), values, p.Refresh)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &APIError{Kind: KindUnknown, Message: "decode record: " + err.Error()}
	}
	return out, nil
}
