package game

import (
	"fmt"

	"github.com/domino14/box/board"
	"github.com/domino14/box/scoring"
)

type playerState struct {
	PlayerInfo

	secretColor board.Color
	points      int
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%20v%9v %4v", onturn, p.Nickname,
		fmt.Sprintf("color %d", p.secretColor), p.points)
}

type playerStates []*playerState

func newPlayerStates(h *History) playerStates {
	ps := make(playerStates, 2)
	for i := range ps {
		ps[i] = &playerState{
			PlayerInfo:  h.Players[i],
			secretColor: h.SecretColors[i],
		}
	}
	return ps
}

func (p playerStates) setScores(t scoring.ScoreTable) {
	for _, ps := range p {
		ps.points = t.For(ps.secretColor)
	}
}
