package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/box/analysis"
	"github.com/domino14/box/config"
)

const testdata = "../../analysis/testdata/"

func loadConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	args = append([]string{"--" + config.ConfigConfigFile + "="}, args...)
	if err := cfg.Load(args, scoreFlags); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestScoreGridStdin(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	cfg := loadConfig(t)
	is.NoErr(run(context.Background(), cfg, strings.NewReader("1 4\nAa111111h\nCa111111h\n"), &out))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	is.Equal(len(lines), 17)
	is.Equal(lines[0], "1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0 0 0 0 0")
	is.Equal(lines[4], "0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0")
	// 15 squares of size 1, 8 of size 2, 3 of size 3
	is.Equal(lines[16], "[40, 0]")
}

func TestScoreTurnJSON(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	cfg := loadConfig(t, "--output-format", "json", "--turn", "1", testdata+"alice-vs-carol-transcript.txt")
	is.NoErr(run(context.Background(), cfg, nil, &out))
	var res struct {
		Players      [2]string `json:"players"`
		Turn         int       `json:"turn"`
		PlayerScores [2]int    `json:"player_scores"`
	}
	is.NoErr(json.Unmarshal(out.Bytes(), &res))
	is.Equal(res.Players, [2]string{"alice", "carol"})
	is.Equal(res.Turn, 1)
	// only the starting tile: a 2x6 block
	is.Equal(res.PlayerScores, [2]int{5, 0})
}

func TestScoreErrors(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	cfg := loadConfig(t, testdata+"broken-vs-carol-transcript.txt")
	is.True(run(context.Background(), cfg, nil, &out) != nil)

	cfg = loadConfig(t, "--top", "2")
	is.Equal(run(context.Background(), cfg, nil, &out), errUsage)

	cfg = loadConfig(t, "--remote", "carrier-pigeon", testdata+"alice-vs-carol-transcript.txt")
	is.True(run(context.Background(), cfg, nil, &out) != nil)
}

func TestBatchText(t *testing.T) {
	var out bytes.Buffer
	cfg := loadConfig(t, "--top", "2", "--versus", "alice,carol", "--histogram",
		testdata+"alice-vs-bob-transcript.txt",
		testdata+"alice-vs-carol-transcript.txt",
		testdata+"bob-vs-carol-transcript.txt",
		testdata+"broken-vs-carol-transcript.txt")
	assert.NoError(t, run(context.Background(), cfg, nil, &out))
	text := out.String()
	assert.Contains(t, text, "skipped "+testdata+"broken-vs-carol-transcript.txt")
	assert.Contains(t, text, "Rank     Score    Contestant")
	assert.Contains(t, text, "NewRank  OldRank  Score    Contestant")
	assert.Contains(t, text, "alice is better than carol")
	assert.Contains(t, text, "Player scores:")
}

func TestBatchYAML(t *testing.T) {
	var out bytes.Buffer
	cfg := loadConfig(t, "--output-format", "yaml",
		testdata+"alice-vs-carol-transcript.txt",
		testdata+"bob-vs-carol-transcript.txt")
	assert.NoError(t, run(context.Background(), cfg, nil, &out))
	assert.Contains(t, out.String(), "standings:")
	assert.Contains(t, out.String(), "player: carol")
	assert.NotContains(t, out.String(), "versus:")
}

func TestTopTable(t *testing.T) {
	text := topTable([]analysis.Ranking{
		{Rank: 1, Player: "b", Points: 150, OldRank: 3},
		{Rank: 1, Player: "a", Points: 150, OldRank: 2},
	})
	assert.Contains(t, text, "       1        3      150 b\n")
	assert.Contains(t, text, "       1        2      150 a\n")
}
