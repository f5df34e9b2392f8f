package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		v := New()
		assert.NotEmpty(t, v)
		_, dup := seen[v]
		assert.False(t, dup, "identifier %q repeated", v)
		seen[v] = struct{}{}
	}
}
