// Package transcript reads and writes the plain-text game transcripts
// produced by the arbiter.
package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/domino14/box/board"
	"github.com/domino14/box/cache"
	"github.com/domino14/box/game"
	"github.com/domino14/box/move"
)

var (
	ErrEmptyTranscript         = errors.New("transcript is empty")
	ErrInvalidTranscriptHeader = errors.New("invalid secret colors header")
)

var headerRegex = regexp.MustCompile(`^(?P<c1>[1-6])\s+(?P<c2>[1-6])$`)

type parser struct {
	history    *game.History
	sawHeader  bool
	lineNumber int
}

// stripComment removes everything from the first '#' and trims the rest.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

func (p *parser) parseLine(line string) error {
	p.lineNumber++
	line = stripComment(line)
	if line == "" {
		return nil
	}
	if !p.sawHeader {
		match := headerRegex.FindStringSubmatch(line)
		if match == nil {
			return fmt.Errorf("%w: line %d: %q", ErrInvalidTranscriptHeader, p.lineNumber, line)
		}
		colors := [2]board.Color{
			board.Color(match[1][0] - '0'),
			board.Color(match[2][0] - '0'),
		}
		if err := game.ValidateSecretColors(colors); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTranscriptHeader, err)
		}
		p.history.SecretColors = colors
		p.sawHeader = true
		return nil
	}
	m, err := move.FromString(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", p.lineNumber, err)
	}
	p.history.AddMove(m)
	return nil
}

// ParseTranscriptFromReader parses a transcript. name is used only to work
// out the player names and may be empty. A byte order mark at the start of
// the input is dropped, and UTF-16 input with a BOM is converted.
func ParseTranscriptFromReader(reader io.Reader, name string) (*game.History, error) {
	players := game.PlayerNamesFromFilename(name)
	history := &game.History{
		Players: [2]game.PlayerInfo{{Nickname: players[0]}, {Nickname: players[1]}},
		Moves:   []*move.Move{},
		Tokens:  []string{},
		Source:  name,
	}
	p := &parser{history: history}

	r := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !p.sawHeader {
		return nil, ErrEmptyTranscript
	}
	log.Debug().Str("source", name).Int("moves", len(history.Moves)).
		Msg("parsed transcript")
	return history, nil
}

// ParseTranscript parses the transcript in filename.
func ParseTranscript(filename string) (*game.History, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTranscriptFromReader(f, filename)
}

// LoadTranscript is ParseTranscript with the parsed history cached until
// the file changes. Every call returns its own copy.
func LoadTranscript(filename string) (*game.History, error) {
	key, err := cache.FileKey("transcript", filename)
	if err != nil {
		return nil, err
	}
	obj, err := cache.Load(key, func(string) (any, error) {
		return ParseTranscript(filename)
	})
	if err != nil {
		return nil, err
	}
	h := *obj.(*game.History)
	h.Moves = slices.Clone(h.Moves)
	h.Tokens = slices.Clone(h.Tokens)
	return &h, nil
}

// HistoryToTranscript writes h in transcript form: the secret colors, then
// one move per line.
func HistoryToTranscript(h *game.History) string {
	var s strings.Builder
	fmt.Fprintf(&s, "%d %d\n", h.SecretColors[0], h.SecretColors[1])
	for _, m := range h.Moves {
		s.WriteString(m.String())
		s.WriteString("\n")
	}
	return s.String()
}
