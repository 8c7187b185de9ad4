package site

import "github.com/tidwall/btree"

// Version is one immutable committed version of a variable.
type Version struct {
	Value      int
	CommitTime int64
	Writer     string
}

// chain is the ordered, append-only history of versions a single site
// keeps for one hosted variable. It is backed by the same
// comparator-driven btree the teacher's own multi-version store uses,
// keyed by commit time rather than by a byte-slice key, since within
// one (site, variable) pair commit time alone totally orders versions.
type chain struct {
	tree *btree.BTreeG[Version]
}

func newChain() *chain {
	return &chain{
		tree: btree.NewBTreeG(func(a, b Version) bool {
			return a.CommitTime < b.CommitTime
		}),
	}
}

func (c *chain) append(v Version) {
	c.tree.Set(v)
}

// latestAsOf returns the version with the greatest commit time that is
// <= asOf, if one exists.
func (c *chain) latestAsOf(asOf int64) (Version, bool) {
	var found Version
	ok := false
	c.tree.Descend(Version{CommitTime: asOf}, func(item Version) bool {
		found = item
		ok = true
		return false
	})
	return found, ok
}

// latest returns the most recently committed version, if any.
func (c *chain) latest() (Version, bool) {
	return c.tree.Max()
}

// all returns every version in ascending commit-time order, for
// invariant checks and tests.
func (c *chain) all() []Version {
	out := make([]Version, 0, c.tree.Len())
	c.tree.Scan(func(item Version) bool {
		out = append(out, item)
		return true
	})
	return out
}
