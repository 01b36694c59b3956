package client

import (
	"context"
	"strconv"
)

// MutationTx is an explicit optimistic-update transaction over one
// cache domain. Begin snapshots the domain, Apply writes optimistic
// entries, and exactly one of Commit or Rollback ends the transaction:
// Commit drops the whole domain so the next read refetches, Rollback
// restores the snapshot verbatim.
type MutationTx struct {
	cache    QueryCache
	domain   string
	snapshot map[string]any
	done     bool
}

// BeginMutation snapshots every cached entry under domain.
func (q *Queries) BeginMutation(domain string) *MutationTx {
	snapshot := map[string]any{}
	for _, key := range q.Cache.Keys() {
		if !matchesDomain(key, domain) {
			continue
		}
		if v, ok := q.Cache.Get(key); ok {
			snapshot[key] = v
		}
	}
	return &MutationTx{cache: q.Cache, domain: domain, snapshot: snapshot}
}

// Apply writes an optimistic value. The key must belong to the
// transaction's domain; anything else is silently ignored rather than
// corrupting a domain the snapshot cannot restore.
func (tx *MutationTx) Apply(key string, value any) {
	if tx.done || !matchesDomain(key, tx.domain) {
		return
	}
	tx.cache.Set(key, value)
}

// Commit ends the transaction after a successful server mutation by
// invalidating the domain. Optimistic values are dropped too: the
// server response is the source of truth, not our guess.
func (tx *MutationTx) Commit() {
	if tx.done {
		return
	}
	tx.done = true
	InvalidateDomain(tx.cache, tx.domain)
}

// Rollback restores the domain to the exact state captured at Begin:
// optimistic entries are removed and every snapshotted entry is
// written back unchanged.
func (tx *MutationTx) Rollback() {
	if tx.done {
		return
	}
	tx.done = true
	for _, key := range tx.cache.Keys() {
		if matchesDomain(key, tx.domain) {
			tx.cache.Delete(key)
		}
	}
	for key, value := range tx.snapshot {
		tx.cache.Set(key, value)
	}
}

// Mutate runs op inside an optimistic transaction: apply writes the
// optimistic cache state, then op performs the server call. Failure
// rolls the cache back; success commits.
func (q *Queries) Mutate(ctx context.Context, domain string, apply func(tx *MutationTx), op func(ctx context.Context) error) error {
	tx := q.BeginMutation(domain)
	if apply != nil {
		apply(tx)
	}
	if err := op(ctx); err != nil {
		tx.Rollback()
		return err
	}
	tx.Commit()
	return nil
}

// Create posts a new record and invalidates the domain on success.
// Mutations make exactly one network call; they are never retried.
func Create[T any](ctx context.Context, q *Queries, domain, path string, in any) (T, error) {
	var out T
	if err := q.Client.sendJSON(ctx, "POST", path, in, &out); err != nil {
		return out, err
	}
	InvalidateDomain(q.Cache, domain)
	return out, nil
}

// Update patches an existing record and invalidates the domain on
// success.
func Update[T any](ctx context.Context, q *Queries, domain, path string, id int64, in any) (T, error) {
	var out T
	if err := q.Client.sendJSON(ctx, "PATCH", path+"/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return out, err
	}
	InvalidateDomain(q.Cache, domain)
	return out, nil
}

// Replace puts a full record and invalidates the domain on success.
func Replace[T any](ctx context.Context, q *Queries, domain, path string, id int64, in any) (T, error) {
	var out T
	if err := q.Client.sendJSON(ctx, "PUT", path+"/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return out, err
	}
	InvalidateDomain(q.Cache, domain)
	return out, nil
}

// Delete removes a record and invalidates the domain on success.
func Delete(ctx context.Context, q *Queries, domain, path string, id int64) error {
	if err := q.Client.sendJSON(ctx, "DELETE", path+"/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return err
	}
	InvalidateDomain(q.Cache, domain)
	return nil
}
