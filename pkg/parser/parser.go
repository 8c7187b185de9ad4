// Package parser turns one line of workload text into a command.Command.
// It is the only part of the system that touches raw strings; the
// engine never parses anything itself.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/command"
)

var (
	beginPattern      = regexp.MustCompile(`(?i)^begin\s*\(\s*(\w+)\s*\)$`)
	readPattern       = regexp.MustCompile(`(?i)^R\s*\(\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	writePattern      = regexp.MustCompile(`(?i)^W\s*\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(-?\d+)\s*\)$`)
	endPattern        = regexp.MustCompile(`(?i)^end\s*\(\s*(\w+)\s*\)$`)
	failPattern       = regexp.MustCompile(`(?i)^fail\s*\(\s*(\d+)\s*\)$`)
	recoverPattern    = regexp.MustCompile(`(?i)^recover\s*\(\s*(\d+)\s*\)$`)
	dumpPattern       = regexp.MustCompile(`(?i)^dump\s*\(\s*\)$`)
	queryStatePattern = regexp.MustCompile(`(?i)^querystate\s*\(\s*\)$`)
)

// ErrUnrecognized is returned for a non-blank, non-comment line that
// matches none of the recognized command shapes.
var ErrUnrecognized = errors.New("unrecognized command")

// ParseLine parses a single line of workload text. Blank lines and
// comment lines (starting with "//" or "===") return command.Empty or
// command.Comment respectively and never an error; the caller must
// not forward either to the engine's Dispatch, since neither ticks
// the logical clock.
func ParseLine(line string) (command.Command, error) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return command.Command{Kind: command.Empty, Raw: line}, nil
	}
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "===") {
		return command.Command{Kind: command.Comment, Raw: line}, nil
	}

	if m := beginPattern.FindStringSubmatch(trimmed); m != nil {
		return command.Command{Kind: command.Begin, Txn: m[1], Raw: line}, nil
	}
	if m := readPattern.FindStringSubmatch(trimmed); m != nil {
		return command.Command{Kind: command.Read, Txn: m[1], Var: m[2], Raw: line}, nil
	}
	if m := writePattern.FindStringSubmatch(trimmed); m != nil {
		v, err := strconv.Atoi(m[3])
		if err != nil {
			return command.Command{}, errors.Wrapf(err, "parsing write value in %q", line)
		}
		return command.Command{Kind: command.Write, Txn: m[1], Var: m[2], Val: v, Raw: line}, nil
	}
	if m := endPattern.FindStringSubmatch(trimmed); m != nil {
		return command.Command{Kind: command.End, Txn: m[1], Raw: line}, nil
	}
	if m := failPattern.FindStringSubmatch(trimmed); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return command.Command{}, errors.Wrapf(err, "parsing site id in %q", line)
		}
		return command.Command{Kind: command.Fail, Site: id, Raw: line}, nil
	}
	if m := recoverPattern.FindStringSubmatch(trimmed); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return command.Command{}, errors.Wrapf(err, "parsing site id in %q", line)
		}
		return command.Command{Kind: command.Recover, Site: id, Raw: line}, nil
	}
	if dumpPattern.MatchString(trimmed) {
		return command.Command{Kind: command.Dump, Raw: line}, nil
	}
	if queryStatePattern.MatchString(trimmed) {
		return command.Command{Kind: command.QueryState, Raw: line}, nil
	}

	return command.Command{}, errors.Wrapf(ErrUnrecognized, "line %q", line)
}
