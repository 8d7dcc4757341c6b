package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/analysis"
)

// ScoreWorker answers score requests on a NATS subject.
type ScoreWorker struct {
	config *WorkerConfig
	nc     *nats.Conn
}

func NewScoreWorker(cfg *WorkerConfig) *ScoreWorker {
	return &ScoreWorker{config: cfg}
}

// Connect dials NATS, backing off between attempts.
func Connect(ctx context.Context, cfg *WorkerConfig, name string) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(cfg.NatsURL, nats.Name(name))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(cfg.ConnectAttempts),
		retry.Delay(cfg.ConnectDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", cfg.NatsURL).
				Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.NatsURL, err)
	}
	return nc, nil
}

// Run serves requests until ctx is done, then drains the subscription so
// requests in flight still get their replies.
func (w *ScoreWorker) Run(ctx context.Context) error {
	log.Info().
		Str("subject", w.config.Subject).
		Str("queue-group", w.config.QueueGroup).
		Msg("starting score worker")

	nc, err := Connect(ctx, w.config, "box-score-worker")
	if err != nil {
		return err
	}
	w.nc = nc

	_, err = nc.QueueSubscribe(w.config.Subject, w.config.QueueGroup, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("received request")
		if err := m.Respond(w.handle(m.Data)); err != nil {
			log.Err(err).Msg("could not respond")
		}
	})
	if err != nil {
		nc.Close()
		return err
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return err
	}
	log.Info().Msgf("Listening on [%s]", w.config.Subject)

	<-ctx.Done()
	log.Info().Msg("worker shutting down")
	if err := nc.Drain(); err != nil {
		log.Err(err).Msg("drain failed")
		nc.Close()
	}
	return ctx.Err()
}

// Process scores one job. Failures are reported in the result.
func Process(job *Job) *JobResult {
	result := &JobResult{JobID: job.JobID}
	resp, err := analysis.Handle(&job.Request)
	if err != nil {
		log.Debug().Err(err).Str("job-id", job.JobID).Msg("score failed")
		resp = analysis.ErrorResponse(err)
	} else {
		log.Info().Str("job-id", job.JobID).Str("name", job.Name).
			Int("turn", resp.Result.Turn).Msg("job scored")
	}
	result.Response = *resp
	return result
}

// handle turns one request into its reply. A malformed request is also
// answered, with an error.
func (w *ScoreWorker) handle(data []byte) []byte {
	job := &Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return marshalResult(&JobResult{Response: *analysis.ErrorResponse(fmt.Errorf("bad request: %w", err))})
	}
	return marshalResult(Process(job))
}

func marshalResult(r *JobResult) []byte {
	bts, err := json.Marshal(r)
	if err != nil {
		// Should never happen, but the requester still needs an answer.
		return []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return bts
}
