package analysis

import (
	"context"
	"runtime"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/box/stats"
	"github.com/domino14/box/transcript"
)

// GameResult is the outcome of scoring one file in a batch.
type GameResult struct {
	Filename string  `json:"filename" yaml:"filename"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Result   *Result `json:"result,omitempty" yaml:"result,omitempty"`

	err error
}

func (g *GameResult) Err() error {
	return g.err
}

// PlayerStats aggregates one player's games.
type PlayerStats struct {
	Name              string  `json:"name" yaml:"name"`
	Games             int     `json:"games" yaml:"games"`
	Wins              int     `json:"wins" yaml:"wins"`
	Ties              int     `json:"ties" yaml:"ties"`
	Losses            int     `json:"losses" yaml:"losses"`
	TotalScore        int     `json:"total_score" yaml:"total_score"`
	CompetitionPoints int     `json:"competition_points" yaml:"competition_points"`
	BestScore         int     `json:"best_score" yaml:"best_score"`
	WorstScore        int     `json:"worst_score" yaml:"worst_score"`
	AvgScore          float64 `json:"avg_score" yaml:"avg_score"`
	StdevScore        float64 `json:"stdev_score" yaml:"stdev_score"`
	// ScoreInterval is the half-width of the 95% interval around AvgScore.
	ScoreInterval float64 `json:"score_interval" yaml:"score_interval"`

	scores stats.ScoreStats
}

// BatchResult is the aggregate of a batch of games.
type BatchResult struct {
	Games           []*GameResult           `json:"games" yaml:"games"`
	PlayerStats     map[string]*PlayerStats `json:"player_stats" yaml:"player_stats"`
	TotalGames      int                     `json:"total_games" yaml:"total_games"`
	SuccessfulGames int                     `json:"successful_games" yaml:"successful_games"`
	FailedGames     int                     `json:"failed_games" yaml:"failed_games"`
}

func NewBatchResult() *BatchResult {
	return &BatchResult{
		Games:       make([]*GameResult, 0),
		PlayerStats: make(map[string]*PlayerStats),
	}
}

// AddGameResult adds a game to the batch and updates the player stats.
func (b *BatchResult) AddGameResult(gr *GameResult) {
	b.Games = append(b.Games, gr)
	b.TotalGames++
	if gr.err != nil || gr.Result == nil {
		b.FailedGames++
		return
	}
	b.SuccessfulGames++

	res := gr.Result
	for p, name := range res.Players {
		ps, exists := b.PlayerStats[name]
		if !exists {
			ps = &PlayerStats{Name: name}
			b.PlayerStats[name] = ps
		}
		ps.Games++
		switch res.Winner {
		case p:
			ps.Wins++
		case -1:
			ps.Ties++
		default:
			ps.Losses++
		}
		ps.CompetitionPoints += res.CompetitionPoints[p]
		ps.scores.Add(res.PlayerScores[p])
		ps.TotalScore = ps.scores.Total()
	}
}

// CalculateAverages fills in the per-player averages.
func (b *BatchResult) CalculateAverages() {
	for _, ps := range b.PlayerStats {
		ps.BestScore = ps.scores.Best()
		ps.WorstScore = ps.scores.Worst()
		ps.AvgScore = ps.scores.Mean()
		ps.StdevScore = ps.scores.Stdev()
		ps.ScoreInterval = stats.MeanInterval(&ps.scores, 95)
	}
}

// Results returns the successfully scored games.
func (b *BatchResult) Results() []*Result {
	ok := lo.Filter(b.Games, func(g *GameResult, _ int) bool {
		return g.Result != nil
	})
	return lo.Map(ok, func(g *GameResult, _ int) *Result { return g.Result })
}

// Players returns the player names in alphabetical order.
func (b *BatchResult) Players() []string {
	names := lo.Keys(b.PlayerStats)
	sort.Strings(names)
	return names
}

// Batch parses and scores every file, using at most threads goroutines. A
// file that fails to load or score is recorded with its error and does not
// stop the rest. Games keep the order of filenames.
func Batch(ctx context.Context, filenames []string, threads int) (*BatchResult, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	results := make([]*GameResult, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, fn := range filenames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gr := &GameResult{Filename: fn}
			h, err := transcript.LoadTranscript(fn)
			if err == nil {
				gr.Result, err = ScoreHistory(h)
			}
			if err != nil {
				log.Debug().Err(err).Str("filename", fn).Msg("could not score game")
				gr.err = err
				gr.Error = err.Error()
			}
			results[i] = gr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := NewBatchResult()
	for _, gr := range results {
		batch.AddGameResult(gr)
	}
	batch.CalculateAverages()
	log.Debug().Int("games", batch.TotalGames).Int("failed", batch.FailedGames).
		Msg("batch scored")
	return batch, nil
}
