// Package site owns the multi-version, multi-site store: placement of
// variables across the ten-site cluster, per-site version chains, and
// the failure/recovery history that governs which replica can serve a
// snapshot read.
package site

import (
	"fmt"
	"strconv"
	"strings"
)

// NumSites is the fixed size of the cluster.
const NumSites = 10

// NumVariables is the fixed number of logical variables, x1..x20.
const NumVariables = 20

// IsReplicated reports whether variable index i is hosted at every site.
// Even-indexed variables are replicated; odd-indexed variables are
// single-homed.
func IsReplicated(index int) bool {
	return index%2 == 0
}

// HomeSite returns the single site that hosts an odd-indexed variable.
// Calling it for an even (replicated) index is a programmer error.
func HomeSite(index int) int {
	return 1 + index%10
}

// SitesFor returns the sites that host variable index i, in ascending
// site-id order.
func SitesFor(index int) []int {
	if IsReplicated(index) {
		sites := make([]int, NumSites)
		for i := 0; i < NumSites; i++ {
			sites[i] = i + 1
		}
		return sites
	}
	return []int{HomeSite(index)}
}

// InitialValue returns the seed value installed on every hosting site
// at logical time 0.
func InitialValue(index int) int {
	return 10 * index
}

// VarName formats a variable index as "xN".
func VarName(index int) string {
	return fmt.Sprintf("x%d", index)
}

// VarIndex parses "xN" back into its index, or ok=false if name is not
// a well-formed variable name in range [1, NumVariables].
func VarIndex(name string) (index int, ok bool) {
	if !strings.HasPrefix(name, "x") {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > NumVariables {
		return 0, false
	}
	return n, true
}
