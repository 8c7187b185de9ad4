package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
)

// dump prints, for every site id 1..10 in order, the committed value
// of each hosted variable, including sites currently down.
func (e *Engine) dump() {
	snapshot := e.sites.Dump()
	for _, id := range site.SiteIDs() {
		values := snapshot[id]
		varIndices := make([]int, 0, len(values))
		for idx := range values {
			varIndices = append(varIndices, idx)
		}
		sort.Ints(varIndices)

		pairs := make([]string, 0, len(varIndices))
		for _, idx := range varIndices {
			pairs = append(pairs, site.VarName(idx)+"="+strconv.Itoa(values[idx]))
		}
		e.emit("site %d: %s", id, strings.Join(pairs, ", "))
	}
}
