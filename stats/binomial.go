package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// number of bisection steps when searching for an interval bound
const bisectSteps = 100

// BinomialResult is the outcome of a head-to-head significance test.
type BinomialResult struct {
	// Wins1 and Wins2 are the wins of the stronger and weaker player, with
	// ties split between them.
	Wins1 int `json:"wins1" yaml:"wins1"`
	Wins2 int `json:"wins2" yaml:"wins2"`
	Games int `json:"games" yaml:"games"`
	// Swapped is true if the second player given to BinomialTest won more.
	Swapped bool `json:"swapped" yaml:"swapped"`
	// P is the one-tailed probability of at least Wins1 wins if both players
	// are equally strong.
	P          float64 `json:"p" yaml:"p"`
	WinRate    float64 `json:"winrate" yaml:"winrate"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	CILow      float64 `json:"ci_low" yaml:"ci_low"`
	CIHigh     float64 `json:"ci_high" yaml:"ci_high"`
}

// atLeast returns the probability of at least wins successes in games
// trials with success probability p.
func atLeast(wins, games int, p float64) float64 {
	if wins <= 0 {
		return 1
	}
	if wins > games {
		return 0
	}
	dist := distuv.Binomial{N: float64(games), P: p}
	return 1 - dist.CDF(float64(wins-1))
}

func bisect(lo, hi float64, test func(float64) bool) float64 {
	var mid float64
	for i := 0; i < bisectSteps; i++ {
		mid = lo + (hi-lo)/2
		if test(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return mid
}

// BinomialTest tests whether one player is better than another given the
// wins, ties and losses of the first. Ties are split evenly, the odd tie
// going to the second player. confidence is a fraction such as 0.95.
func BinomialTest(wins, ties, losses int, confidence float64) BinomialResult {
	res := BinomialResult{
		Wins1:      wins + ties/2,
		Wins2:      losses + (ties - ties/2),
		Confidence: confidence,
	}
	if res.Wins1 < res.Wins2 {
		res.Wins1, res.Wins2 = res.Wins2, res.Wins1
		res.Swapped = true
	}
	res.Games = res.Wins1 + res.Wins2
	if res.Games == 0 {
		res.P = 1
		res.CIHigh = 1
		return res
	}
	res.P = atLeast(res.Wins1, res.Games, 0.5)
	res.WinRate = float64(res.Wins1) / float64(res.Games)

	loProb := (1 - confidence) / 2
	hiProb := loProb + confidence
	res.CILow = bisect(0, 1, func(v float64) bool {
		return atLeast(res.Wins1, res.Games, v) >= loProb
	})
	res.CIHigh = bisect(0, 1, func(v float64) bool {
		return atLeast(res.Wins1, res.Games, v) >= hiProb
	})
	return res
}

// Verdict describes the result in words, naming the players in the order
// they were passed to BinomialTest.
func (r BinomialResult) Verdict(name1, name2 string) string {
	if r.Swapped {
		name1, name2 = name2, name1
	}
	verdict := "is better than"
	if r.Wins1 == r.Wins2 {
		verdict = "is tied with"
	}
	return fmt.Sprintf("%s %s %s (p=%.6g, winrate=%f, n=%d, %d%% CI=[%.3f,%.3f])",
		name1, verdict, name2, r.P, r.WinRate, r.Games,
		int(r.Confidence*100+0.5), r.CILow, r.CIHigh)
}
