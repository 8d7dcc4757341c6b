package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/config"
	"github.com/domino14/box/worker"
)

var cfg *config.Config
var nc *nats.Conn

func HandleRequest(ctx context.Context, job worker.Job) (*worker.JobResult, error) {
	logger := log.With().
		Str("jobID", job.JobID).
		Logger()

	result := worker.Process(&job)

	if job.ReplyChannel != "" && nc != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("score-sending-via-nats")
		err = retry.Do(
			func() error {
				// Only an acknowledgement is expected back.
				_, err := nc.Request(job.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(5),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("score-reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return result, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		// Results are still returned from the handler.
		log.Warn().AnErr("natsConnectErr", err).Msg("no NATS; reply channels will be ignored")
		nc = nil
	}

	lambda.Start(HandleRequest)
}
