// Package stats has the running statistics and significance tests used to
// compare players over many games.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// ScoreStats summarizes the scores one player got over a series of games.
// Mean and variance are updated as each score arrives (Welford), so the
// scores themselves are never stored.
type ScoreStats struct {
	games int
	total int
	best  int
	worst int

	mean float64
	m2   float64
}

// Add records the score of one more game.
func (s *ScoreStats) Add(score int) {
	if s.games == 0 || score > s.best {
		s.best = score
	}
	if s.games == 0 || score < s.worst {
		s.worst = score
	}
	s.games++
	s.total += score

	delta := float64(score) - s.mean
	s.mean += delta / float64(s.games)
	s.m2 += delta * (float64(score) - s.mean)
}

func (s *ScoreStats) Games() int {
	return s.games
}

func (s *ScoreStats) Total() int {
	return s.total
}

// Best and Worst are both 0 before any game is added.
func (s *ScoreStats) Best() int {
	return s.best
}

func (s *ScoreStats) Worst() int {
	return s.worst
}

func (s *ScoreStats) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; it is 0 for fewer than two games.
func (s *ScoreStats) Variance() float64 {
	if s.games < 2 {
		return 0
	}
	return s.m2 / float64(s.games-1)
}

func (s *ScoreStats) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError is the standard error of the mean score.
func (s *ScoreStats) StandardError() float64 {
	if s.games == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.games))
}
