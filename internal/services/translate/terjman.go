package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaInvoker is the part of the Lambda client Terjman needs.
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type terjmanRequest struct {
	Texts []string `json:"texts"`
}

type terjmanResponse struct {
	Translations []string `json:"translations"`
	Error        string   `json:"error,omitempty"`
}

// Terjman is the local English to Darija model, served as a Lambda function.
type Terjman struct {
	client       LambdaInvoker
	functionName string
}

func NewTerjman(client LambdaInvoker, functionName string) (*Terjman, error) {
	if client == nil {
		return nil, errors.New("lambda client is required")
	}
	if functionName == "" {
		return nil, errors.New("terjman function name is required")
	}
	return &Terjman{client: client, functionName: functionName}, nil
}

// NewTerjmanFromEnv builds the Lambda client from the default AWS credential chain.
func NewTerjmanFromEnv(ctx context.Context, functionName, region string) (*Terjman, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewTerjman(lambda.NewFromConfig(cfg), functionName)
}

func (t *Terjman) Name() string { return "terjman" }

func (t *Terjman) Translate(ctx context.Context, text string) (string, error) {
	out, err := t.TranslateBatch(ctx, []string{text})
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// TranslateBatch sends texts in one invocation; output order matches input.
func (t *Terjman) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}

	payload, err := json.Marshal(terjmanRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := t.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(t.functionName),
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", t.functionName, err)
	}
	if result.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp terjmanResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("translator returned %d translations for %d texts", len(resp.Translations), len(texts))
	}
	return resp.Translations, nil
}
