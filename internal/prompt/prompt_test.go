// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\n  science \n"), &out)

	got, err := p.Line("Enter subject")
	require.NoError(t, err)
	assert.Equal(t, "science", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Enter subject: "))
}

func TestLine_LastLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("9"), &bytes.Buffer{})
	got, err := p.Line("Enter grade")
	require.NoError(t, err)
	assert.Equal(t, "9", got)
}

func TestLine_EOF(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Line("Enter chapter number")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestParse_RetriesInvalidAnswers(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n7\n"), &out)

	got, err := Parse(p, "Enter chapter number", strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Contains(t, out.String(), "invalid syntax")
}

func TestParse_GivesUp(t *testing.T) {
	p := New(strings.NewReader("a\nb\nc\n4\n"), &bytes.Buffer{})
	_, err := Parse(p, "Enter chapter number", strconv.Atoi)
	assert.Error(t, err)
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("0\n2\n"), &out)

	idx, err := p.Choose("Select a book", []string{"Beehive", "Moments"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), " 1) Beehive")
	assert.Contains(t, out.String(), " 2) Moments")
	assert.Contains(t, out.String(), "between 1 and 2")
}

func TestChoose_SingleAndEmpty(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	idx, err := p.Choose("Select a book", []string{"Science"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = p.Choose("Select a book", nil)
	assert.Error(t, err)
}
