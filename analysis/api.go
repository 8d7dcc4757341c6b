package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/box/coding"
	"github.com/domino14/box/game"
	"github.com/domino14/box/transcript"
)

var ErrEmptyRequest = errors.New("request has neither a transcript nor a code")

// Request asks for one game to be scored. Exactly one of Transcript and
// Code should be set. Turn, if set, scores the position after that many
// moves instead of the final one.
type Request struct {
	Name       string `json:"name,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Code       string `json:"code,omitempty"`
	Turn       *int   `json:"turn,omitempty"`
}

// Response carries either a result or an error message. Code is the compact
// form of the scored game.
type Response struct {
	Result *Result `json:"result,omitempty"`
	Code   string  `json:"code,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func historyFromRequest(req *Request) (*game.History, error) {
	switch {
	case req.Code != "":
		h, err := coding.DecodeHistory(strings.TrimSpace(req.Code))
		if err != nil {
			return nil, err
		}
		if req.Name != "" {
			names := game.PlayerNamesFromFilename(req.Name)
			h.Players = [2]game.PlayerInfo{{Nickname: names[0]}, {Nickname: names[1]}}
			h.Source = req.Name
		}
		return h, nil
	case req.Transcript != "":
		return transcript.ParseTranscriptFromReader(strings.NewReader(req.Transcript), req.Name)
	}
	return nil, ErrEmptyRequest
}

// Handle scores the game in req. Errors are returned and never put in the
// response; callers that ship responses over the wire use ErrorResponse.
func Handle(req *Request) (*Response, error) {
	h, err := historyFromRequest(req)
	if err != nil {
		return nil, err
	}
	turn := len(h.Moves)
	if req.Turn != nil {
		turn = *req.Turn
	}
	res, err := ScoreHistoryAt(h, turn)
	if err != nil {
		return nil, err
	}
	resp := &Response{Result: res}
	// games with repeated tile colors have no compact code
	if code, err := coding.EncodeHistory(h); err == nil {
		resp.Code = code
	}
	return resp, nil
}

func ErrorResponse(err error) *Response {
	return &Response{Error: fmt.Sprintf("%v", err)}
}
