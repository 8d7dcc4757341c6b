package analysis

import (
	"sort"

	"github.com/domino14/box/stats"
)

// Ranking is one line of a standings table.
type Ranking struct {
	Rank   int    `json:"rank" yaml:"rank"`
	Player string `json:"player" yaml:"player"`
	Points int    `json:"points" yaml:"points"`
	// OldRank is the 1-based position in the top list a restricted
	// standings table was built from; 0 elsewhere.
	OldRank int `json:"old_rank,omitempty" yaml:"old_rank,omitempty"`
}

// Rank orders players by points, highest first. Players with equal points
// share the better rank and the next rank is skipped, so 1, 1, 3.
func Rank(points map[string]int) []Ranking {
	rankings := make([]Ranking, 0, len(points))
	for player, pts := range points {
		rankings = append(rankings, Ranking{Player: player, Points: pts})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Points != rankings[j].Points {
			return rankings[i].Points > rankings[j].Points
		}
		return rankings[i].Player > rankings[j].Player
	})
	for i := range rankings {
		if i > 0 && rankings[i].Points == rankings[i-1].Points {
			rankings[i].Rank = rankings[i-1].Rank
		} else {
			rankings[i].Rank = i + 1
		}
	}
	return rankings
}

// Standings ranks the players of a batch by competition points. If only is
// non-empty, just the games where both players are in it count.
func (b *BatchResult) Standings(only []string) []Ranking {
	keep := map[string]bool{}
	for _, p := range only {
		keep[p] = true
	}
	points := map[string]int{}
	for _, res := range b.Results() {
		if len(keep) > 0 && !(keep[res.Players[0]] && keep[res.Players[1]]) {
			continue
		}
		for p, name := range res.Players {
			points[name] += res.CompetitionPoints[p]
		}
	}
	return Rank(points)
}

// TopN returns the players ranked n or better in the full standings,
// ordered by rank and then by name.
func (b *BatchResult) TopN(n int) []string {
	var top []Ranking
	for _, r := range b.Standings(nil) {
		if r.Rank <= n {
			top = append(top, r)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Rank != top[j].Rank {
			return top[i].Rank < top[j].Rank
		}
		return top[i].Player < top[j].Player
	})
	players := make([]string, len(top))
	for i, r := range top {
		players[i] = r.Player
	}
	return players
}

// TopStandings ranks the top n players by the games they played among
// themselves. OldRank is each player's position in TopN(n), so players who
// tied overall still get distinct old ranks.
func (b *BatchResult) TopStandings(n int) []Ranking {
	top := b.TopN(n)
	position := make(map[string]int, len(top))
	for i, p := range top {
		position[p] = i + 1
	}
	rankings := b.Standings(top)
	for i := range rankings {
		rankings[i].OldRank = position[rankings[i].Player]
	}
	return rankings
}

// HeadToHeadRecord counts the games between two players from the first
// player's side.
type HeadToHeadRecord struct {
	Player1 string               `json:"player1" yaml:"player1"`
	Player2 string               `json:"player2" yaml:"player2"`
	Wins    int                  `json:"wins" yaml:"wins"`
	Ties    int                  `json:"ties" yaml:"ties"`
	Losses  int                  `json:"losses" yaml:"losses"`
	Test    stats.BinomialResult `json:"test" yaml:"test"`
}

func (h *HeadToHeadRecord) String() string {
	return h.Test.Verdict(h.Player1, h.Player2)
}

// HeadToHead compares two players over the games they played against each
// other, with a 95% binomial test.
func (b *BatchResult) HeadToHead(p1, p2 string) *HeadToHeadRecord {
	rec := &HeadToHeadRecord{Player1: p1, Player2: p2}
	for _, res := range b.Results() {
		var me int
		switch {
		case res.Players[0] == p1 && res.Players[1] == p2:
			me = 0
		case res.Players[1] == p1 && res.Players[0] == p2:
			me = 1
		default:
			continue
		}
		switch res.Winner {
		case me:
			rec.Wins++
		case -1:
			rec.Ties++
		default:
			rec.Losses++
		}
	}
	rec.Test = stats.BinomialTest(rec.Wins, rec.Ties, rec.Losses, 0.95)
	return rec
}
