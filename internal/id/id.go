// Package id generates opaque item identifiers.
package id

import "github.com/google/uuid"

// New returns a fresh collision-resistant identifier. Values are unique
// with overwhelming probability across runs and across re-hydration from
// storage; no counter is persisted.
func New() string {
	return uuid.NewString()
}
