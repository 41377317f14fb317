// Package settings is the key-value table that drives the public site
// (titles, contact lines, open/closed banner). Plain CRUD, upsert on key.
package settings

import "context"

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Store interface {
	List(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, key, value string) error
}
