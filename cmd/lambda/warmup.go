package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies scheduled warmup events.
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the
	// self-invocations to land on other instances.
	WarmupDelay = 75 * time.Millisecond

	// MaxWarmupConcurrency caps the self-invocations one ping can trigger.
	MaxWarmupConcurrency = 10

	// warmupInvokeLimit bounds Invoke calls in flight at once.
	warmupInvokeLimit = 4
)

// WarmupEvent is the scheduled event payload.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

type invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

var newInvoker = func(ctx context.Context) (invoker, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return lambdasdk.NewFromConfig(cfg), nil
}

// IsWarmupEvent reports whether event is a warmup ping. Any other payload,
// including API Gateway requests, returns false.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var raw struct {
		Source      *string  `json:"source"`
		Concurrency *float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &raw); err != nil {
		return nil, false
	}
	if raw.Source == nil || *raw.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: WarmupSource}
	if raw.Concurrency != nil && *raw.Concurrency > 0 {
		warmup.Concurrency = clampConcurrency(*raw.Concurrency)
	}
	return warmup, true
}

func clampConcurrency(n float64) int {
	if n > MaxWarmupConcurrency {
		return MaxWarmupConcurrency
	}
	return int(n)
}

// HandleWarmup answers a warmup ping and, when asked, fans out async
// self-invocations to warm more instances.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	instancesWarmed := 1

	if count := clampConcurrency(float64(warmup.Concurrency)); count > 0 {
		if err := selfInvoke(ctx, count); err == nil {
			instancesWarmed += count
		}
	}

	time.Sleep(WarmupDelay)

	return map[string]interface{}{
		"statusCode": 200,
		"body": WarmupResponse{
			Status:          "warm",
			InstancesWarmed: instancesWarmed,
		},
	}, nil
}

func selfInvoke(ctx context.Context, count int) error {
	client, err := newInvoker(ctx)
	if err != nil {
		return err
	}

	// children get concurrency 0 so they do not fan out again
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	functionName := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	var g errgroup.Group
	g.SetLimit(warmupInvokeLimit)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
