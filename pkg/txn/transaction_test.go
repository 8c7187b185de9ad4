package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordWriteTracksEarliestAccessPerSite(t *testing.T) {
	tx := New("T1", 5)
	tx.RecordWrite("x2", 42, []int{1, 2, 3}, 10)
	tx.RecordWrite("x4", 99, []int{2, 3}, 12)

	assert.Equal(t, int64(10), tx.AccessedSitesAtWriteTime[1])
	assert.Equal(t, int64(10), tx.AccessedSitesAtWriteTime[2], "earlier write to a shared site wins")
	assert.Equal(t, int64(10), tx.AccessedSitesAtWriteTime[3])
	assert.Equal(t, []int{1, 2, 3}, tx.WriteSitesFor("x2"))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, Active.IsLive())
	assert.True(t, Waiting.IsLive())
	assert.False(t, Committed.IsLive())
	assert.False(t, Aborted.IsLive())

	assert.True(t, Committed.IsTerminal())
	assert.True(t, Aborted.IsTerminal())
	assert.False(t, Active.IsTerminal())
	assert.False(t, Waiting.IsTerminal())
}
