package main

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/analysis"
	"github.com/domino14/box/config"
	"github.com/domino14/box/worker"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	job := worker.Job{
		JobID: "foo",
		Request: analysis.Request{
			Name:       "alice-vs-carol-transcript.txt",
			Transcript: "1 4\nAa111111h\nCa111111h\n",
		},
	}
	ret, err := HandleRequest(context.Background(), job)
	is.NoErr(err)
	is.Equal(ret.JobID, "foo")
	is.Equal(ret.Error, "")
	is.Equal(ret.Result.WinnerName, "alice")
	is.Equal(ret.Result.CompetitionPoints[1], 100-ret.Result.PlayerScores[0])
}

func TestHandleRequestBadTranscript(t *testing.T) {
	is := is.New(t)
	ret, err := HandleRequest(context.Background(), worker.Job{JobID: "bar",
		Request: analysis.Request{Transcript: "7 1\n"}})
	is.NoErr(err)
	is.True(ret.Error != "")
	is.True(ret.Result == nil)
}
