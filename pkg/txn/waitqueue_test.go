package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitQueueFIFOAndRemoval(t *testing.T) {
	q := NewWaitQueue()
	q.Enqueue(WaitingOp{TxnID: "T1", Var: "x1"})
	q.Enqueue(WaitingOp{TxnID: "T2", Var: "x3"})
	q.Enqueue(WaitingOp{TxnID: "T1", Var: "x5"})

	assert.Equal(t, 3, q.Len())
	q.RemoveTransaction("T1")

	snap := q.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, "T2", snap[0].TxnID)
}
