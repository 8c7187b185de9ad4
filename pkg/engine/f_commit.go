package engine

import (
	"sort"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

func (e *Engine) end(id string) error {
	t, err := e.lookup(id)
	if err != nil {
		e.log.Warnf("end: %v (%s)", err, id)
		return err
	}
	if t.Status.IsTerminal() {
		e.log.Warnf("end: %s is terminal", id)
		return txn.ErrTransactionTerminal
	}

	if reason, ok := e.phaseA(t); !ok {
		e.abort(t, reason)
		return nil
	}
	if reason, ok := e.phaseB(t); !ok {
		e.abort(t, reason)
		return nil
	}

	added := e.phaseCEdges(t)
	if e.graph.HasDangerousCycleThrough(t.ID) {
		for _, edge := range added {
			e.graph.RemoveEdge(edge.from, edge.to, edge.kind)
		}
		e.abort(t, txn.ReasonDangerousCycle)
		return nil
	}

	e.commit(t)
	return nil
}

// phaseA is the Available-Copies abort rule: every site this
// transaction wrote to must not have failed between the write and
// now.
func (e *Engine) phaseA(t *txn.Transaction) (txn.AbortReason, bool) {
	siteIDs := make([]int, 0, len(t.AccessedSitesAtWriteTime))
	for id := range t.AccessedSitesAtWriteTime {
		siteIDs = append(siteIDs, id)
	}
	sort.Ints(siteIDs)
	for _, id := range siteIDs {
		writeTime := t.AccessedSitesAtWriteTime[id]
		s := e.sites.Site(id)
		if s == nil {
			continue
		}
		if failedAfter(s, writeTime, e.clock) {
			return txn.ReasonSiteFailedAfterWrite, false
		}
	}
	return "", true
}

func failedAfter(s *site.Site, writeTime, now int64) bool {
	for _, iv := range s.History {
		if iv.FailTime > writeTime && iv.FailTime <= now {
			return true
		}
	}
	return false
}

// phaseB is first-committer-wins: a strictly later committed version
// of any variable this transaction wants to write, by someone else,
// aborts it.
func (e *Engine) phaseB(t *txn.Transaction) (txn.AbortReason, bool) {
	for _, varName := range t.WrittenVariables() {
		varIndex, _ := site.VarIndex(varName)
		for _, c := range e.commitHistory[varIndex] {
			if c.CommitTime > t.StartTime && c.Writer != t.ID {
				return txn.ReasonWWConflict, false
			}
		}
	}
	return "", true
}

type pendingEdge struct {
	from, to string
	kind     txn.EdgeKind
}

// phaseCEdges adds the provisional WW edges committing t would fix
// and returns them so the caller can roll them back on a dangerous-
// cycle abort.
func (e *Engine) phaseCEdges(t *txn.Transaction) []pendingEdge {
	var added []pendingEdge

	for _, varName := range t.WrittenVariables() {
		varIndex, _ := site.VarIndex(varName)
		for _, c := range e.commitHistory[varIndex] {
			if c.Writer == t.ID {
				continue
			}
			if e.graph.AddEdge(c.Writer, t.ID, txn.WW) {
				added = append(added, pendingEdge{c.Writer, t.ID, txn.WW})
			}
		}
	}

	for varName, rec := range t.ReadSet {
		varIndex, _ := site.VarIndex(varName)
		history := e.commitHistory[varIndex]
		if len(history) == 0 {
			continue
		}
		latest := history[len(history)-1]
		if latest.Writer == rec.Writer {
			continue // T's snapshot is still the latest committed version
		}
		if e.graph.AddEdge(rec.Writer, t.ID, txn.WW) {
			added = append(added, pendingEdge{rec.Writer, t.ID, txn.WW})
		}
	}

	return added
}

// commit applies every buffered write to the sites that are both in
// its original write set and still up, records it in the commit
// history, and transitions t to COMMITTED.
func (e *Engine) commit(t *txn.Transaction) {
	for varName, value := range t.WriteBuffer {
		varIndex, _ := site.VarIndex(varName)
		writeSites := t.WriteSitesFor(varName)
		target := intersect(writeSites, e.sites.UpSitesFor(varIndex))
		e.sites.WriteCommitted(varIndex, value, e.clock, t.ID, target)
		e.commitHistory[varIndex] = append(e.commitHistory[varIndex], commitEntry{
			CommitTime: e.clock,
			Value:      value,
			Writer:     t.ID,
		})
	}
	t.Status = txn.Committed
	e.emit("%s commits", t.ID)
}

// abort records the reason, removes every graph edge touching t and
// every queued read of t, and transitions it to ABORTED. For a
// dangerous-cycle abort the caller has already removed the provisional
// phaseCEdges before calling it.
func (e *Engine) abort(t *txn.Transaction, reason txn.AbortReason) {
	t.AbortReason = reason
	t.Status = txn.Aborted
	e.graph.RemoveTransaction(t.ID)
	e.waiting.RemoveTransaction(t.ID)
	e.emit("%s aborts %s", t.ID, reason)
}

func intersect(a, b []int) []int {
	set := make(map[int]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]int, 0, len(a))
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
