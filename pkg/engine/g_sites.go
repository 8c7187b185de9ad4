package engine

import (
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

func (e *Engine) failSite(id int) error {
	if err := e.sites.Fail(id, e.clock); err != nil {
		e.log.Warnf("fail: %v (site %d)", err, id)
		return err
	}
	e.log.Infof("site %d fails at t=%d", id, e.clock)
	return nil
}

func (e *Engine) recoverSite(id int) error {
	if err := e.sites.Recover(id, e.clock); err != nil {
		e.log.Warnf("recover: %v (site %d)", err, id)
		return err
	}
	e.log.Infof("site %d recovers at t=%d", id, e.clock)
	e.resumeWaiting()
	return nil
}

// resumeWaiting retries every queued read, in FIFO order, using the
// same eligibility rules as a fresh read. A read that succeeds
// reactivates its transaction; one that is now provably unsatisfiable
// aborts it; anything else stays queued for the next recovery.
func (e *Engine) resumeWaiting() {
	for _, op := range e.waiting.Snapshot() {
		t, ok := e.txns[op.TxnID]
		if !ok || t.Status != txn.Waiting {
			e.waiting.RemoveTransaction(op.TxnID)
			continue
		}
		varIndex, ok := site.VarIndex(op.Var)
		if !ok {
			continue
		}
		if e.tryRead(t, varIndex, op.Var) {
			t.Status = txn.Active
			e.waiting.RemoveTransaction(t.ID)
			continue
		}
		if !e.sites.HasAnyServableReplica(varIndex, t.StartTime) {
			e.waiting.RemoveTransaction(t.ID)
			e.abort(t, txn.ReasonNoReadableCopy)
		}
	}
}
