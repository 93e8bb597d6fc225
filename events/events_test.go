package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeKindMatches(t *testing.T) {
	assert.True(t, ChangeAny.Matches(ChangeCreated))
	assert.True(t, ChangeAny.Matches(ChangeDeleted))
	assert.True(t, ChangeUpdated.Matches(ChangeUpdated))
	assert.False(t, ChangeCreated.Matches(ChangeDeleted))
}
