// Package engine is the transaction manager: it consumes parsed
// commands, drives the site store through the placement-aware
// Available-Copies protocol, and validates commits against
// Serializable Snapshot Isolation.
package engine

import "github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"

// Logger is the minimal structured-logging surface the engine needs.
// *zap.SugaredLogger satisfies it without an explicit interface
// declaration at the call site.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// nopLogger discards everything; used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

// commitEntry is one committed write to a variable, independent of
// which sites happened to be up to receive it. The engine keeps this
// as the single source of truth for first-committer-wins and
// dangerous-structure checks rather than re-scanning every site's
// version chain, since a commit applies the identical (value,
// commit_t, writer) triple to every site that accepts it.
type commitEntry struct {
	CommitTime int64
	Value      int
	Writer     string
}

// queryState is the structure emitted by the querystate() diagnostic
// command: a point-in-time snapshot of everything the engine is
// tracking, useful when debugging a workload trace.
type queryState struct {
	Clock    int64
	Txns     map[string]txnSummary
	Waiting  []txn.WaitingOp
	SiteUp   map[int]bool
}

type txnSummary struct {
	Status      string
	StartTime   int64
	WriteBuffer map[string]int
	ReadSet     []string
	AbortReason string
}
