// score prints the final grid and scores of a transcript, or ranks the
// players over many transcripts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/domino14/box/analysis"
	"github.com/domino14/box/config"
	"github.com/domino14/box/transcript"
	"github.com/domino14/box/worker"
)

const (
	flagTurn      = "turn"
	flagTop       = "top"
	flagVersus    = "versus"
	flagHistogram = "histogram"
	flagRemote    = "remote"
)

var errUsage = errors.New("usage: score [flags] [<transcript> ...]")

func scoreFlags(fs *pflag.FlagSet) {
	fs.Int(flagTurn, -1, "score the position after this many moves instead of the final one")
	fs.Int(flagTop, 0, "rank only the games among the top N players")
	fs.StringSlice(flagVersus, nil, "two players to compare head to head")
	fs.Bool(flagHistogram, false, "print a histogram of player scores")
	fs.String(flagRemote, "", "score remotely: nats, or lambda:<function>")
}

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:], scoreFlags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, stdin io.Reader, w io.Writer) error {
	files := cfg.Args()
	batchMode := len(files) > 1 || cfg.GetInt(flagTop) > 0 || len(cfg.GetStringSlice(flagVersus)) > 0
	if batchMode {
		if len(files) == 0 {
			return errUsage
		}
		return runBatch(ctx, cfg, files, w)
	}
	name := "<stdin>"
	in := stdin
	if len(files) == 1 {
		name = files[0]
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	res, err := scoreOne(ctx, cfg, name, in)
	if err != nil {
		return err
	}
	return output(cfg, w, res, func() string { return scoreGrid(res) })
}

func scoreOne(ctx context.Context, cfg *config.Config, name string, in io.Reader) (*analysis.Result, error) {
	turn := cfg.GetInt(flagTurn)
	remote := cfg.GetString(flagRemote)
	if remote == "" {
		h, err := transcript.ParseTranscriptFromReader(in, name)
		if err != nil {
			return nil, err
		}
		if turn < 0 {
			return analysis.ScoreHistory(h)
		}
		return analysis.ScoreHistoryAt(h, turn)
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	job := &worker.Job{JobID: name, Request: analysis.Request{Name: name, Transcript: string(text)}}
	if turn >= 0 {
		job.Turn = &turn
	}
	scorer, cleanup, err := remoteScorer(ctx, cfg, remote)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	resp, err := scorer.Score(ctx, job)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func remoteScorer(ctx context.Context, cfg *config.Config, remote string) (worker.Scorer, func(), error) {
	switch {
	case remote == "nats":
		wcfg := worker.DefaultWorkerConfig(cfg)
		nc, err := worker.Connect(ctx, wcfg, "box-score")
		if err != nil {
			return nil, nil, err
		}
		return worker.NewClient(nc, wcfg.Subject, 10*time.Second), nc.Close, nil
	case strings.HasPrefix(remote, "lambda:"):
		c, err := worker.NewLambdaClient(ctx, strings.TrimPrefix(remote, "lambda:"))
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown remote %q", remote)
}

// scoreGrid prints the grid one row per line, then both players' scores.
func scoreGrid(res *analysis.Result) string {
	var s strings.Builder
	for _, row := range res.Grid {
		for c, v := range row {
			if c > 0 {
				s.WriteByte(' ')
			}
			fmt.Fprint(&s, v)
		}
		s.WriteByte('\n')
	}
	fmt.Fprintf(&s, "[%d, %d]", res.PlayerScores[0], res.PlayerScores[1])
	return s.String()
}

type batchOutput struct {
	Standings []analysis.Ranking               `json:"standings" yaml:"standings"`
	Top       []analysis.Ranking               `json:"top,omitempty" yaml:"top,omitempty"`
	Versus    *analysis.HeadToHeadRecord       `json:"versus,omitempty" yaml:"versus,omitempty"`
	Games     []*analysis.GameResult           `json:"games" yaml:"games"`
	Players   map[string]*analysis.PlayerStats `json:"players" yaml:"players"`
}

func runBatch(ctx context.Context, cfg *config.Config, files []string, w io.Writer) error {
	batch, err := analysis.Batch(ctx, files, cfg.GetInt(config.ConfigThreads))
	if err != nil {
		return err
	}
	out := &batchOutput{
		Standings: batch.Standings(nil),
		Games:     batch.Games,
		Players:   batch.PlayerStats,
	}
	if n := cfg.GetInt(flagTop); n > 0 {
		out.Top = batch.TopStandings(n)
	}
	if vs := cfg.GetStringSlice(flagVersus); len(vs) > 0 {
		if len(vs) != 2 {
			return errors.New("--versus needs exactly two players")
		}
		out.Versus = batch.HeadToHead(vs[0], vs[1])
	}
	return output(cfg, w, out, func() string {
		var s strings.Builder
		for _, g := range batch.Games {
			if g.Error != "" {
				fmt.Fprintf(&s, "skipped %s: %s\n", g.Filename, g.Error)
			}
		}
		s.WriteString(rankTable(out.Standings))
		if out.Top != nil {
			s.WriteString("\n")
			s.WriteString(topTable(out.Top))
		}
		if out.Versus != nil {
			fmt.Fprintf(&s, "\n%s\n", out.Versus)
		}
		if cfg.GetBool(flagHistogram) {
			s.WriteString("\n")
			if err := analysis.WriteHistogram(&s, "Player scores:",
				analysis.ScoreHistogram(batch.Results()), 50); err != nil {
				fmt.Fprintf(&s, "histogram: %v\n", err)
			}
		}
		return strings.TrimRight(s.String(), "\n")
	})
}

func dashes() string {
	return strings.Repeat("-", 8) + " " + strings.Repeat("-", 8) + " " + strings.Repeat("-", 20) + "\n"
}

func rankTable(rankings []analysis.Ranking) string {
	var s strings.Builder
	s.WriteString("Rank     Score    Contestant\n")
	s.WriteString(dashes())
	for _, r := range rankings {
		fmt.Fprintf(&s, "%8d %8d %s\n", r.Rank, r.Points, r.Player)
	}
	s.WriteString(dashes())
	return s.String()
}

// topTable compares ranks among the top players with their positions in
// the overall top list.
func topTable(top []analysis.Ranking) string {
	var s strings.Builder
	s.WriteString("NewRank  OldRank  Score    Contestant\n")
	s.WriteString(strings.Repeat("-", 8) + " " + dashes())
	for _, r := range top {
		fmt.Fprintf(&s, "%8d %8d %8d %s\n", r.Rank, r.OldRank, r.Points, r.Player)
	}
	s.WriteString(strings.Repeat("-", 8) + " " + dashes())
	return s.String()
}

func output(cfg *config.Config, w io.Writer, v any, text func() string) error {
	switch cfg.GetString(config.ConfigOutputFormat) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(w, text())
	return err
}
