// Package command defines the tagged-union input the parser produces
// and the engine consumes. Dispatch is a switch over Kind, never a
// type hierarchy: the set of commands is closed and small enough that
// a sum type is the idiomatic fit.
package command

// Kind discriminates the command variants. Comment and Empty are
// recognized by the parser but never forwarded to the engine, so the
// logical clock never advances on them.
type Kind int

const (
	Begin Kind = iota
	Read
	Write
	End
	Fail
	Recover
	Dump
	QueryState
	Comment
	Empty
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case Read:
		return "R"
	case Write:
		return "W"
	case End:
		return "end"
	case Fail:
		return "fail"
	case Recover:
		return "recover"
	case Dump:
		return "dump"
	case QueryState:
		return "querystate"
	case Comment:
		return "comment"
	default:
		return "empty"
	}
}

// Command is one parsed line. Only the fields relevant to Kind are
// populated; the rest hold zero values.
type Command struct {
	Kind Kind

	Txn  string // begin, R, W, end
	Var  string // R, W
	Val  int    // W
	Site int    // fail, recover

	Raw string // original line, for diagnostics
}
