package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRunHashesArguments(t *testing.T) {
	var out bytes.Buffer

	err := run(&out, strings.NewReader(""), bcrypt.MinCost, []string{"password123", "тест12345"})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[0]), []byte("password123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[1]), []byte("тест12345")))
}

func TestRunReadsStdin(t *testing.T) {
	var out bytes.Buffer

	err := run(&out, strings.NewReader("password123\r\n\nanother-pass\n"), bcrypt.MinCost, nil)

	require.NoError(t, err)
	assert.Len(t, strings.Fields(out.String()), 2)
}

func TestRunRejectsBadInput(t *testing.T) {
	var out bytes.Buffer

	assert.Error(t, run(&out, nil, bcrypt.MinCost, []string{"short"}))
	assert.Error(t, run(&out, nil, 99, []string{"password123"}))
	assert.Empty(t, out.String())
}
