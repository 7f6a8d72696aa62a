package translate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	gotFunction string
	gotPayload  terjmanRequest
	output      *lambda.InvokeOutput
	err         error
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.gotFunction = aws.ToString(params.FunctionName)
	if err := json.Unmarshal(params.Payload, &f.gotPayload); err != nil {
		return nil, err
	}
	return f.output, f.err
}

func payload(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestTerjman_Translate(t *testing.T) {
	inv := &fakeInvoker{output: &lambda.InvokeOutput{
		Payload: payload(t, map[string]interface{}{"translations": []string{"كيداير؟"}}),
	}}
	tj, err := NewTerjman(inv, "terjman-nano-v2")
	require.NoError(t, err)

	got, err := tj.Translate(context.Background(), "How are you?")
	require.NoError(t, err)
	assert.Equal(t, "كيداير؟", got)
	assert.Equal(t, "terjman-nano-v2", inv.gotFunction)
	assert.Equal(t, []string{"How are you?"}, inv.gotPayload.Texts)
}

func TestTerjman_Errors(t *testing.T) {
	tests := []struct {
		name string
		inv  *fakeInvoker
	}{
		{"invoke error", &fakeInvoker{err: errors.New("throttled")}},
		{"function error", &fakeInvoker{output: &lambda.InvokeOutput{FunctionError: aws.String("Unhandled"), Payload: []byte(`{}`)}}},
		{"translator error", &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`{"error":"model not loaded"}`)}}},
		{"count mismatch", &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`{"translations":[]}`)}}},
		{"bad json", &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`not json`)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tj, err := NewTerjman(tt.inv, "fn")
			require.NoError(t, err)
			_, err = tj.Translate(context.Background(), "hello")
			assert.Error(t, err)
		})
	}
}

func TestNewTerjman_Validation(t *testing.T) {
	_, err := NewTerjman(nil, "fn")
	assert.Error(t, err)
	_, err = NewTerjman(&fakeInvoker{}, "")
	assert.Error(t, err)
}
