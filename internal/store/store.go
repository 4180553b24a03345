// Package store defines the key-value storage collaborator the engine
// persists class records through. The interface is deliberately small
// (get and set of JSON values) so persistence logic can be exercised in
// tests against an in-memory substitute while production runs on Redis.
package store

import "context"

// Store is the durable key-value surface. Get reports whether the key
// exists; a missing key is not an error. Set overwrites unconditionally —
// last write wins, there is no cross-session locking.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
