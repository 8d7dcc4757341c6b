package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"

	"github.com/domino14/box/analysis"
)

// Scorer scores a job somewhere other than in this process.
type Scorer interface {
	Score(ctx context.Context, job *Job) (*analysis.Response, error)
}

type lambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaClient scores jobs by invoking the box lambda function.
type LambdaClient struct {
	invoker  lambdaInvoker
	function string
}

// NewLambdaClient uses the default AWS credential chain.
func NewLambdaClient(ctx context.Context, function string) (*LambdaClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &LambdaClient{invoker: lambda.NewFromConfig(cfg), function: function}, nil
}

func (c *LambdaClient) Score(ctx context.Context, job *Job) (*analysis.Response, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	out, err := c.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(c.function),
		Payload:      payload,
	})
	if err != nil {
		return nil, err
	}
	if out.FunctionError != nil {
		log.Debug().Str("payload", string(out.Payload)).Msg("lambda-function-error")
		return nil, fmt.Errorf("%w: %s", ErrWorkerError, aws.ToString(out.FunctionError))
	}
	result := &JobResult{}
	if err := json.Unmarshal(out.Payload, result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return &result.Response, fmt.Errorf("%w: %s", ErrWorkerError, result.Error)
	}
	return &result.Response, nil
}

var (
	_ Scorer = (*Client)(nil)
	_ Scorer = (*LambdaClient)(nil)
)
