package site

// FailureInterval records one fail/recover cycle. Recovered is false
// while the interval is still open (the site has not yet come back).
type FailureInterval struct {
	FailTime    int64
	RecoverTime int64
	Recovered   bool
}

// Site is a single data manager: it is up or down, it owns a version
// chain for every variable it hosts, and for replicated variables it
// tracks whether that replica is currently eligible as a snapshot
// source.
type Site struct {
	ID      int
	Up      bool
	History []FailureInterval

	chains   map[int]*chain
	readable map[int]bool // replicated variables only
}

// newSite builds a site with its hosted variables seeded at their
// initial value and commit time 0, per the fixed placement rule.
func newSite(id int) *Site {
	s := &Site{
		ID:       id,
		Up:       true,
		chains:   make(map[int]*chain),
		readable: make(map[int]bool),
	}
	for i := 1; i <= NumVariables; i++ {
		if !hosts(id, i) {
			continue
		}
		c := newChain()
		c.append(Version{Value: InitialValue(i), CommitTime: 0, Writer: "init"})
		s.chains[i] = c
		if IsReplicated(i) {
			s.readable[i] = true
		}
	}
	return s
}

func hosts(siteID, varIndex int) bool {
	if IsReplicated(varIndex) {
		return true
	}
	return HomeSite(varIndex) == siteID
}

// Hosts reports whether this site stores variable index i.
func (s *Site) Hosts(varIndex int) bool {
	_, ok := s.chains[varIndex]
	return ok
}

// Fail marks the site down as of logical time t. A fail on an
// already-down site is a no-op (the caller decides whether that is a
// protocol error; the site itself stays idempotent).
func (s *Site) Fail(t int64) {
	if !s.Up {
		return
	}
	s.Up = false
	s.History = append(s.History, FailureInterval{FailTime: t})
	for varIndex := range s.readable {
		s.readable[varIndex] = false
	}
}

// Recover marks the site up as of logical time t, closing the open
// failure interval. Replicated variables stay unreadable-for-new-
// snapshots until the next committed write refreshes them; odd
// (single-home) variables need no such flag and are immediately
// usable once the site is up.
func (s *Site) Recover(t int64) {
	if s.Up {
		return
	}
	s.Up = true
	if n := len(s.History); n > 0 && !s.History[n-1].Recovered {
		s.History[n-1].RecoverTime = t
		s.History[n-1].Recovered = true
	}
}

// noDisqualifyingFailure reports whether no failure timestamp lies in
// (from, to], regardless of current up/down status. A failure exactly
// at from does not disqualify (the version was installed strictly
// before the fail); a failure exactly at to does.
func (s *Site) noDisqualifyingFailure(from, to int64) bool {
	for _, iv := range s.History {
		if iv.FailTime > from && iv.FailTime <= to {
			return false
		}
	}
	return true
}

// WasUpContinuously reports whether the site has no failure timestamp
// in (from, to] and is currently up.
func (s *Site) WasUpContinuously(from, to int64) bool {
	return s.Up && s.noDisqualifyingFailure(from, to)
}

// CanRead attempts to serve a snapshot read of varIndex for a
// transaction that began at txnStart. It returns the chosen version's
// value and writer id on success.
//
// The continuous-uptime requirement only applies to replicated
// variables: a gap in this site's uptime could mean some other
// replica accepted a commit this site never saw, so a stale local
// version must not be trusted across that gap. A single-home
// (odd-indexed) variable has no other replica that could have
// diverged, so once the site is back up its one-and-only copy is
// trustworthy regardless of how it got there.
func (s *Site) CanRead(varIndex int, txnStart int64) (value int, writer string, ok bool) {
	if !s.Up {
		return 0, "", false
	}
	c, hosted := s.chains[varIndex]
	if !hosted {
		return 0, "", false
	}
	v, found := c.latestAsOf(txnStart)
	if !found {
		return 0, "", false
	}
	if IsReplicated(varIndex) {
		if !s.readable[varIndex] {
			return 0, "", false
		}
		if !s.WasUpContinuously(v.CommitTime, txnStart) {
			return 0, "", false
		}
	}
	return v.Value, v.Writer, true
}

// HasFutureServableVersion reports whether this site holds a version
// of varIndex, committed no later than txnStart, that could still be
// served once the site is up again — regardless of its current
// up/down status or replicated-readability flag. It answers "could a
// future recovery (plus, for replicated variables, a subsequent
// commit) ever let this site serve the read", as distinct from
// CanRead's "can it serve the read right now". A variable with no
// site satisfying this predicate can never be read at this snapshot
// by any sequence of future events, so the engine aborts rather than
// queues it.
//
// For replicated variables the commit-to-start window must never have
// been broken by an intervening failure, for the same reason CanRead
// enforces it. Single-home variables have no such requirement: the
// site's copy is the only copy, so it is always eventually servable
// once the site is back up.
func (s *Site) HasFutureServableVersion(varIndex int, txnStart int64) bool {
	c, hosted := s.chains[varIndex]
	if !hosted {
		return false
	}
	v, found := c.latestAsOf(txnStart)
	if !found {
		return false
	}
	if IsReplicated(varIndex) {
		return s.noDisqualifyingFailure(v.CommitTime, txnStart)
	}
	return true
}

// WriteCommitted appends a newly committed version. For replicated
// variables, a committed write always makes the replica readable for
// new snapshots again.
func (s *Site) WriteCommitted(varIndex, value int, commitTime int64, writer string) {
	c, hosted := s.chains[varIndex]
	if !hosted {
		return
	}
	c.append(Version{Value: value, CommitTime: commitTime, Writer: writer})
	if IsReplicated(varIndex) {
		s.readable[varIndex] = true
	}
}

// LatestCommitted returns the most recent committed value of varIndex
// at this site, used by dump() which reports state even at down
// sites.
func (s *Site) LatestCommitted(varIndex int) (value int, ok bool) {
	c, hosted := s.chains[varIndex]
	if !hosted {
		return 0, false
	}
	v, found := c.latest()
	if !found {
		return 0, false
	}
	return v.Value, true
}

// Versions returns the full version chain of varIndex in ascending
// commit-time order, for invariant checks and tests.
func (s *Site) Versions(varIndex int) []Version {
	c, hosted := s.chains[varIndex]
	if !hosted {
		return nil
	}
	return c.all()
}

// HostedVariables returns the sorted list of variable indices hosted
// at this site.
func (s *Site) HostedVariables() []int {
	out := make([]int, 0, len(s.chains))
	for idx := range s.chains {
		out = append(out, idx)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[i] {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
