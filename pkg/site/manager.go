package site

import "sort"

// Manager owns all ten sites and routes placement-aware operations
// to them. It is the Available-Copies replication layer: reads go to
// any one up-and-readable replica, writes go to every currently-up
// replica.
type Manager struct {
	sites map[int]*Site
}

// NewManager builds the fixed ten-site cluster with every variable
// seeded per the placement rule.
func NewManager() *Manager {
	m := &Manager{sites: make(map[int]*Site, NumSites)}
	for i := 1; i <= NumSites; i++ {
		m.sites[i] = newSite(i)
	}
	return m
}

// Site returns the site by id, or nil if id is out of range.
func (m *Manager) Site(id int) *Site {
	return m.sites[id]
}

// SitesFor returns the sites hosting varIndex, ascending by id.
func (m *Manager) SitesFor(varIndex int) []int {
	return SitesFor(varIndex)
}

// UpSitesFor returns the currently-up sites hosting varIndex,
// ascending by id.
func (m *Manager) UpSitesFor(varIndex int) []int {
	all := SitesFor(varIndex)
	up := make([]int, 0, len(all))
	for _, id := range all {
		if s := m.sites[id]; s != nil && s.Up {
			up = append(up, id)
		}
	}
	return up
}

// Fail marks site id down at logical time t.
func (m *Manager) Fail(id int, t int64) error {
	s := m.sites[id]
	if s == nil {
		return ErrUnknownSite
	}
	s.Fail(t)
	return nil
}

// Recover marks site id up at logical time t.
func (m *Manager) Recover(id int, t int64) error {
	s := m.sites[id]
	if s == nil {
		return ErrUnknownSite
	}
	s.Recover(t)
	return nil
}

// CanRead searches SitesFor(varIndex) in ascending site-id order and
// returns the first eligible snapshot source.
func (m *Manager) CanRead(varIndex int, txnStart int64) (value int, sourceSite int, writer string, ok bool) {
	for _, id := range SitesFor(varIndex) {
		s := m.sites[id]
		if s == nil {
			continue
		}
		if v, w, found := s.CanRead(varIndex, txnStart); found {
			return v, id, w, true
		}
	}
	return 0, 0, "", false
}

// HasAnyServableReplica reports whether some site hosting varIndex —
// up or down — could plausibly serve this snapshot after a future
// recovery. If false, no sequence of recover/write events can ever
// make the read succeed and the caller should abort rather than wait.
func (m *Manager) HasAnyServableReplica(varIndex int, txnStart int64) bool {
	for _, id := range SitesFor(varIndex) {
		s := m.sites[id]
		if s != nil && s.HasFutureServableVersion(varIndex, txnStart) {
			return true
		}
	}
	return false
}

// WriteCommitted applies a committed write to every site in
// targetSites that is still currently up (sites that failed between
// the write and the commit are silently skipped by the caller via
// targetSites, which should already be intersected with UpSitesFor).
func (m *Manager) WriteCommitted(varIndex, value int, commitTime int64, writer string, targetSites []int) {
	for _, id := range targetSites {
		if s := m.sites[id]; s != nil && s.Up {
			s.WriteCommitted(varIndex, value, commitTime, writer)
		}
	}
}

// Dump returns, for every site id 1..NumSites (including down sites),
// the committed value of each hosted variable.
func (m *Manager) Dump() map[int]map[int]int {
	out := make(map[int]map[int]int, NumSites)
	for id := 1; id <= NumSites; id++ {
		s := m.sites[id]
		if s == nil {
			continue
		}
		values := make(map[int]int)
		for _, idx := range s.HostedVariables() {
			if v, ok := s.LatestCommitted(idx); ok {
				values[idx] = v
			}
		}
		out[id] = values
	}
	return out
}

// SiteIDs returns 1..NumSites in ascending order.
func SiteIDs() []int {
	ids := make([]int, NumSites)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// UpSiteIDs returns the currently up site ids, ascending.
func (m *Manager) UpSiteIDs() []int {
	ids := make([]int, 0, NumSites)
	for id := 1; id <= NumSites; id++ {
		if s := m.sites[id]; s != nil && s.Up {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
