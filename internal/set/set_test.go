package set_test

import (
	"testing"

	"deedles.dev/wlseat/internal/set"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := set.New(3, 1)
	s.Add(2)
	s.Add(2)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(4))

	s.Delete(1)
	assert.False(t, s.Has(1))
	assert.Equal(t, []int{2, 3}, set.Sorted(s))
}
