package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusPacking, StatusReady, StatusShipped, StatusDelivered} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus(""))
}

func TestCanAdvance(t *testing.T) {
	assert.True(t, CanAdvance(StatusPacking, StatusReady))
	assert.True(t, CanAdvance(StatusPacking, StatusDelivered))
	assert.True(t, CanAdvance(StatusReady, StatusReady))

	assert.False(t, CanAdvance(StatusShipped, StatusPacking))
	assert.False(t, CanAdvance(StatusDelivered, StatusReady))
}

func TestRegistryReturnsSameDraftPerKey(t *testing.T) {
	r := NewRegistry(NewMemoryStore(), testCatalog(), testCustomers())

	a := r.Draft("op:1")
	b := r.Draft("op:1")
	c := r.Draft("op:2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
