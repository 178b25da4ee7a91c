package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestReplayPositions(t *testing.T) {
	out, err := runCmd(t, "0", "750", "1600", "9000")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "active: hero", lines[0])
	assert.Contains(t, out, "-> about (scrollY=750)")
	assert.Contains(t, out, "-> skills (scrollY=1600)")
	// 9000 clamps to the last scrollable offset, 4800, which is contact.
	assert.Contains(t, out, "-> contact (scrollY=4800)")
	assert.Equal(t, "active: contact", lines[len(lines)-1])
}

func TestGoto(t *testing.T) {
	out, err := runCmd(t, "--goto", "Projects")
	require.NoError(t, err)
	assert.Contains(t, out, "settled at 3200")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "active: projects"))

	out, err = runCmd(t, "--goto", "blog")
	require.NoError(t, err)
	assert.Contains(t, out, "goto blog: no such section")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "active: hero"))
}

func TestBadInput(t *testing.T) {
	_, err := runCmd(t, "abc")
	assert.Error(t, err)

	_, err = runCmd(t, "--heights", "100,200")
	assert.ErrorContains(t, err, "need 7 heights")
}
