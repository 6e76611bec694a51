package translation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// fakeInvoker records the request and returns a canned body
type fakeInvoker struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func newTestBedrock(invoker bedrockInvoker) *BedrockProvider {
	config := DefaultConfig()
	config.Provider = "bedrock"
	config.Model = DefaultModel("bedrock")
	return &BedrockProvider{client: invoker, config: config}
}

func TestBedrockProvider_Translate(t *testing.T) {
	fake := &fakeInvoker{body: `{"content": [{"type": "text", "text": " 你好 "}]}`}

	got, err := newTestBedrock(fake).Translate(context.Background(), "Hello", "English", "Chinese")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "你好" {
		t.Errorf("Translate() = %q, want 你好", got)
	}

	if aws.ToString(fake.input.ModelId) != "anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("ModelId = %q", aws.ToString(fake.input.ModelId))
	}

	var req bedrockRequest
	if err := json.Unmarshal(fake.input.Body, &req); err != nil {
		t.Fatalf("Request body is not JSON: %v", err)
	}
	if req.AnthropicVersion != bedrockAnthropicVersion || req.MaxTokens != 1000 || req.Temperature != 0.1 {
		t.Errorf("Unexpected request settings: %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("Unexpected messages: %+v", req.Messages)
	}
	if req.Messages[0].Content[0].Text != Prompt("Hello", "English", "Chinese") {
		t.Errorf("Unexpected prompt %q", req.Messages[0].Content[0].Text)
	}
}

func TestBedrockProvider_Errors(t *testing.T) {
	tests := []struct {
		name         string
		fake         *fakeInvoker
		wantResponse bool
	}{
		{"invoke fails", &fakeInvoker{err: errors.New("throttled")}, false},
		{"missing content", &fakeInvoker{body: `{"content": []}`}, true},
		{"undecodable body", &fakeInvoker{body: `not json`}, true},
		{"empty text", &fakeInvoker{body: `{"content": [{"type": "text", "text": "  "}]}`}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestBedrock(tt.fake).Translate(context.Background(), "Hello", "English", "Chinese")
			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if IsResponseError(err) != tt.wantResponse {
				t.Errorf("IsResponseError() = %v, want %v", !tt.wantResponse, tt.wantResponse)
			}
		})
	}
}
