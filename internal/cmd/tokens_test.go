package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "a.css", "a{}")

	require.NoError(t, ts.run("tokens", "a.css"))
	assert.Equal(t, "a.css:1:1\tident\t\"a\"\n"+
		"a.css:1:2\t{\t\"{\"\n"+
		"a.css:1:3\t}\t\"}\"\n", ts.stdout.String())
}

func TestTokens_SkipWhitespace(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "a.css", "a /* c */ b")

	require.NoError(t, ts.run("tokens", "--skip_whitespace", "a.css"))
	assert.Equal(t, "a.css:1:1\tident\t\"a\"\n"+
		"a.css:1:11\tident\t\"b\"\n", ts.stdout.String())
}

func TestTokens_Stdin(t *testing.T) {
	ts := newTestState(t)
	ts.stdin = strings.NewReader("x")

	require.NoError(t, ts.run("tokens", "-"))
	assert.Equal(t, "-:1:1\tident\t\"x\"\n", ts.stdout.String())
}

func TestTokens_MissingFile(t *testing.T) {
	ts := newTestState(t)

	err := ts.run("tokens", "missing.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading missing.css")
	assert.Empty(t, ts.stdout.String())
}

func TestTokens_NoArgs(t *testing.T) {
	ts := newTestState(t)
	assert.Error(t, ts.run("tokens"))
}
