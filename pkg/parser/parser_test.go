package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/command"
)

func TestParseLineRecognizedShapes(t *testing.T) {
	cases := []struct {
		line string
		want command.Command
	}{
		{"begin(T1)", command.Command{Kind: command.Begin, Txn: "T1"}},
		{"  begin( T2 )  ", command.Command{Kind: command.Begin, Txn: "T2"}},
		{"R(T1,x3)", command.Command{Kind: command.Read, Txn: "T1", Var: "x3"}},
		{"W(T1,x3,30)", command.Command{Kind: command.Write, Txn: "T1", Var: "x3", Val: 30}},
		{"end(T1)", command.Command{Kind: command.End, Txn: "T1"}},
		{"fail(4)", command.Command{Kind: command.Fail, Site: 4}},
		{"recover(4)", command.Command{Kind: command.Recover, Site: 4}},
		{"dump()", command.Command{Kind: command.Dump}},
		{"querystate()", command.Command{Kind: command.QueryState}},
		{"", command.Command{Kind: command.Empty}},
		{"// a comment", command.Command{Kind: command.Comment}},
		{"=== section ===", command.Command{Kind: command.Comment}},
	}

	for _, c := range cases {
		got, err := ParseLine(c.line)
		require.NoError(t, err, c.line)
		assert.Equal(t, c.want.Kind, got.Kind, c.line)
		assert.Equal(t, c.want.Txn, got.Txn, c.line)
		assert.Equal(t, c.want.Var, got.Var, c.line)
		assert.Equal(t, c.want.Val, got.Val, c.line)
		assert.Equal(t, c.want.Site, got.Site, c.line)
	}
}

func TestParseLineRejectsGarbage(t *testing.T) {
	_, err := ParseLine("not a command")
	assert.Error(t, err)
}
