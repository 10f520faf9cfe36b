package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, p := range All() {
		parsed, ok := Parse(p.String())
		require.True(t, ok, p.String())
		assert.Equal(t, p, parsed)
	}
	_, ok := Parse("CanDoAnything")
	assert.False(t, ok)
}

func TestSetFailsClosedWhenEmpty(t *testing.T) {
	s := NewSet()
	for _, p := range All() {
		assert.False(t, s.Has(p))
	}
}

func TestSetAddRemove(t *testing.T) {
	s := NewSet(CreateTask)

	assert.True(t, s.Has(CreateTask))
	assert.False(t, s.Add(CreateTask), "adding a held permission reports no change")

	require.True(t, s.Add(DeleteTask))
	assert.True(t, s.Has(DeleteTask))

	require.True(t, s.Remove(DeleteTask))
	assert.False(t, s.Has(DeleteTask))
	assert.False(t, s.Remove(DeleteTask), "removing an absent permission reports no change")
}
