package engine

import "github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"

func (e *Engine) begin(id string) error {
	if _, exists := e.txns[id]; exists {
		e.log.Warnf("begin: %s already exists", id)
		return txn.ErrTransactionDuplicate
	}
	e.txns[id] = txn.New(id, e.clock)
	e.log.Debugf("%s begins at t=%d", id, e.clock)
	return nil
}
