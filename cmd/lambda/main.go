// Package main serves the Zelig API from AWS Lambda behind an API Gateway
// HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/zelig/zelig-backend/internal/app"
	"github.com/zelig/zelig-backend/internal/config"
	"github.com/zelig/zelig-backend/internal/services"
)

var (
	initOnce sync.Once
	handler  http.Handler
	initErr  error
)

func main() {
	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// warmup events never touch the application
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup)
	}

	h, err := getHandler(ctx)
	if err != nil {
		return nil, err
	}

	var req events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("decode API Gateway event: %w", err)
	}
	return serve(ctx, h, req)
}

// getHandler builds the application once per execution environment.
func getHandler(ctx context.Context) (http.Handler, error) {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		base, err := services.NewBaseLogger(cfg.Environment, cfg.LogLevel)
		if err != nil {
			initErr = err
			return
		}
		application, err := app.New(ctx, cfg, base)
		if err != nil {
			initErr = err
			return
		}
		handler = application.Handler()
	})
	return handler, initErr
}
