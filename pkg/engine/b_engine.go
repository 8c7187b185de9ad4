package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/command"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/site"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/txn"
)

// Engine owns the entire aggregate state of the system: the site
// store, the transaction table, the dependency graph, the waiting
// queue, and the logical clock. It is not safe for concurrent use —
// per the core's single-threaded event-loop design, callers that
// expose it across goroutines must serialize command submission
// themselves.
type Engine struct {
	sites   *site.Manager
	txns    map[string]*txn.Transaction
	graph   *txn.Graph
	waiting *txn.WaitQueue
	clock   int64

	commitHistory map[int][]commitEntry // var index -> commits, ascending

	out io.Writer
	log Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds a fresh engine: ten sites seeded per the placement rule,
// an empty transaction table, and a clock at zero. out receives every
// user-visible line the protocol produces.
func New(out io.Writer, opts ...Option) *Engine {
	e := &Engine{
		sites:         site.NewManager(),
		txns:          make(map[string]*txn.Transaction),
		graph:         txn.NewGraph(),
		waiting:       txn.NewWaitQueue(),
		commitHistory: make(map[int][]commitEntry),
		out:           out,
		log:           nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the current logical time, for diagnostics and tests.
func (e *Engine) Clock() int64 { return e.clock }

// Dispatch advances the logical clock by one and routes cmd to the
// matching handler. Comment and Empty commands must never reach this
// method — the parser/driver boundary is responsible for filtering
// them out before the clock ticks.
func (e *Engine) Dispatch(cmd command.Command) error {
	e.clock++
	switch cmd.Kind {
	case command.Begin:
		return e.begin(cmd.Txn)
	case command.Read:
		return e.read(cmd.Txn, cmd.Var)
	case command.Write:
		return e.write(cmd.Txn, cmd.Var, cmd.Val)
	case command.End:
		return e.end(cmd.Txn)
	case command.Fail:
		return e.failSite(cmd.Site)
	case command.Recover:
		return e.recoverSite(cmd.Site)
	case command.Dump:
		e.dump()
		return nil
	case command.QueryState:
		e.emitQueryState()
		return nil
	default:
		e.log.Warnf("dispatch: command kind %v should never reach the engine", cmd.Kind)
		return nil
	}
}

func (e *Engine) emit(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format+"\n", args...)
}

func (e *Engine) lookup(id string) (*txn.Transaction, error) {
	t, ok := e.txns[id]
	if !ok {
		return nil, txn.ErrUnknownTransaction
	}
	return t, nil
}

func (e *Engine) liveTransactions(except string) []*txn.Transaction {
	ids := make([]string, 0, len(e.txns))
	for id := range e.txns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*txn.Transaction, 0, len(ids))
	for _, id := range ids {
		if id == except {
			continue
		}
		t := e.txns[id]
		if t.Status.IsLive() {
			out = append(out, t)
		}
	}
	return out
}
