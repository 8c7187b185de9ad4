package engine

import (
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

func (e *Engine) write(id, varName string, value int) error {
	t, err := e.lookup(id)
	if err != nil {
		e.log.Warnf("write: %v (%s)", err, id)
		return err
	}
	if t.Status.IsTerminal() {
		e.log.Warnf("write: %s is terminal", id)
		return txn.ErrTransactionTerminal
	}
	varIndex, ok := site.VarIndex(varName)
	if !ok {
		e.log.Warnf("write: %s is not a known variable", varName)
		return site.ErrUnknownVariable
	}

	upSites := e.sites.UpSitesFor(varIndex)
	if len(upSites) == 0 {
		e.abort(t, txn.ReasonNoUpSiteForWrite)
		return nil
	}

	t.RecordWrite(varName, value, upSites, e.clock)
	for _, other := range e.liveTransactions(t.ID) {
		if _, read := other.ReadSet[varName]; read {
			e.graph.AddEdge(other.ID, t.ID, txn.RW)
		}
	}
	e.emit("%s: written at sites %v", varName, upSites)
	return nil
}
