package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/analysis"
)

var ErrWorkerError = errors.New("worker returned an error")

// Client sends score requests to a ScoreWorker.
type Client struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewClient(nc *nats.Conn, subject string, timeout time.Duration) *Client {
	return &Client{nc: nc, subject: subject, timeout: timeout}
}

// Score sends one job and waits for its result. A request nobody answers
// is retried a few times, since a worker may be restarting.
func (c *Client) Score(ctx context.Context, job *Job) (*analysis.Response, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	var msg *nats.Msg
	err = retry.Do(
		func() error {
			rctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			msg, err = c.nc.RequestWithContext(rctx, c.subject, data)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, nats.ErrNoResponders) || errors.Is(err, context.DeadlineExceeded)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("job-id", job.JobID).
				Msg("did-not-receive-reply-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	result := &JobResult{}
	if err := json.Unmarshal(msg.Data, result); err != nil {
		return nil, err
	}
	if result.JobID != job.JobID {
		return nil, fmt.Errorf("reply for job %q, expected %q", result.JobID, job.JobID)
	}
	if result.Error != "" {
		return &result.Response, fmt.Errorf("%w: %s", ErrWorkerError, result.Error)
	}
	return &result.Response, nil
}
