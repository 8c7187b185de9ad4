package engine

import (
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

func (e *Engine) read(id, varName string) error {
	t, err := e.lookup(id)
	if err != nil {
		e.log.Warnf("read: %v (%s)", err, id)
		return err
	}
	if t.Status.IsTerminal() {
		e.log.Warnf("read: %s is terminal", id)
		return txn.ErrTransactionTerminal
	}
	varIndex, ok := site.VarIndex(varName)
	if !ok {
		e.log.Warnf("read: %s is not a known variable", varName)
		return site.ErrUnknownVariable
	}

	if v, ok := t.WriteBuffer[varName]; ok {
		e.emit("%s: %d", varName, v)
		return nil
	}
	if rec, ok := t.ReadSet[varName]; ok {
		e.emit("%s: %d", varName, rec.Value)
		return nil
	}

	if e.tryRead(t, varIndex, varName) {
		return nil
	}

	if !e.sites.HasAnyServableReplica(varIndex, t.StartTime) {
		e.abort(t, txn.ReasonNoReadableCopy)
		return nil
	}
	t.Status = txn.Waiting
	e.waiting.Enqueue(txn.WaitingOp{TxnID: t.ID, Var: varName})
	e.emit("%s waits on %s", t.ID, varName)
	return nil
}

// tryRead attempts to serve var from a readable replica on behalf of
// t. On success it records the read, adds the RW edges a stale
// snapshot owes to any live writer, emits the value, and returns
// true. It does not mutate t.Status either way — callers decide what
// a failed attempt means (wait vs. abort).
func (e *Engine) tryRead(t *txn.Transaction, varIndex int, varName string) bool {
	value, sourceSite, writer, ok := e.sites.CanRead(varIndex, t.StartTime)
	if !ok {
		return false
	}
	t.RecordRead(varName, txn.ReadRecord{Value: value, SourceSite: sourceSite, Writer: writer})
	for _, other := range e.liveTransactions(t.ID) {
		if _, wrote := other.WriteBuffer[varName]; wrote {
			e.graph.AddEdge(t.ID, other.ID, txn.RW)
		}
	}
	e.emit("%s: %d", varName, value)
	return true
}
