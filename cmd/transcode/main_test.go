package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/coding"
)

func TestEncodeDecode(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	text := "4 2\nAa123456h\nHo314562v\n# comment\nKs654321v\n"
	is.NoErr(run([]string{"encode"}, strings.NewReader(text), &out))
	is.Equal(out.String(), "eAAAXeu~nT\n")

	out.Reset()
	is.NoErr(run([]string{"decode", "eAAAXeu~nT"}, nil, &out))
	is.Equal(out.String(), "4 2\nAa123456h\nHo314562v\nKs654321v\n")
}

func TestEncodeFiles(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	is.NoErr(run([]string{"encode",
		"../../analysis/testdata/alice-vs-bob-transcript.txt",
		"../../analysis/testdata/bob-vs-carol-transcript.txt"}, nil, &out))
	is.Equal(len(strings.Split(strings.TrimSpace(out.String()), "\n")), 2)

	// repeated colors in a tile have no code
	err := run([]string{"encode", "../../analysis/testdata/alice-vs-carol-transcript.txt"}, nil, &out)
	is.True(errors.Is(err, coding.ErrNotPermutation))
}

func TestUsage(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	is.Equal(run(nil, nil, &out), errUsage)
	is.Equal(run([]string{"decode"}, nil, &out), errUsage)
	is.Equal(run([]string{"frob"}, nil, &out), errUsage)
	is.True(run([]string{"decode", "e!!"}, nil, &out) != nil)
}
