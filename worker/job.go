package worker

import (
	"github.com/domino14/box/analysis"
)

// Job is a score request received over NATS.
type Job struct {
	// Echoed back in the result so callers can match replies
	JobID string `json:"job_id,omitempty"`

	// If set, the lambda handler also publishes the result here
	ReplyChannel string `json:"reply_channel,omitempty"`

	analysis.Request
}

// JobResult is the reply to a Job.
type JobResult struct {
	JobID string `json:"job_id,omitempty"`

	analysis.Response
}
