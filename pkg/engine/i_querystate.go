package engine

import (
	"sort"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

// emitQueryState logs a full point-in-time snapshot of the engine at
// debug level. It is a diagnostic aid for tracing a workload, never
// part of the deterministic protocol output, so it goes through the
// logger rather than e.out.
func (e *Engine) emitQueryState() {
	ids := make([]string, 0, len(e.txns))
	for id := range e.txns {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	qs := queryState{
		Clock:   e.clock,
		Txns:    make(map[string]txnSummary, len(ids)),
		Waiting: e.waiting.Snapshot(),
		SiteUp:  make(map[int]bool),
	}
	for _, id := range ids {
		t := e.txns[id]
		reads := make([]string, 0, len(t.ReadSet))
		for v := range t.ReadSet {
			reads = append(reads, v)
		}
		sort.Strings(reads)
		qs.Txns[id] = txnSummary{
			Status:      t.Status.String(),
			StartTime:   t.StartTime,
			WriteBuffer: t.WriteBuffer,
			ReadSet:     reads,
			AbortReason: string(t.AbortReason),
		}
	}
	for _, id := range site.SiteIDs() {
		if s := e.sites.Site(id); s != nil {
			qs.SiteUp[id] = s.Up
		}
	}

	edges := make(map[string][]txn.Edge)
	for _, id := range ids {
		if out := e.graph.Outgoing(id); len(out) > 0 {
			edges[id] = out
		}
	}

	e.log.Debugf("querystate: clock=%d txns=%+v edges=%+v waiting=%+v sites=%+v",
		qs.Clock, qs.Txns, edges, qs.Waiting, qs.SiteUp)
}
