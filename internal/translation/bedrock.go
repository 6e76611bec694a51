package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const bedrockAnthropicVersion = "bedrock-2023-05-31"

// bedrockInvoker is the subset of the Bedrock runtime client we use
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider translates with an Anthropic model hosted on AWS Bedrock
type BedrockProvider struct {
	client bedrockInvoker
	config *Config
}

type bedrockContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bedrockMessage struct {
	Role    string           `json:"role"`
	Content []bedrockContent `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float32          `json:"temperature"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockResponse struct {
	Content []bedrockContent `json:"content"`
}

// NewBedrockProvider creates a Bedrock provider. Credentials come from the
// default AWS chain; the region from config.
func NewBedrockProvider(ctx context.Context, config *Config) (*BedrockProvider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockProvider{
		client: bedrockruntime.NewFromConfig(awsCfg),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *BedrockProvider) Name() string {
	return "bedrock"
}

// Translate invokes the model with an Anthropic messages body
func (p *BedrockProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: bedrockAnthropicVersion,
		MaxTokens:        p.config.MaxTokens,
		Temperature:      p.config.Temperature,
		Messages: []bedrockMessage{
			{
				Role:    "user",
				Content: []bedrockContent{{Type: "text", Text: Prompt(text, sourceLang, targetLang)}},
			},
		},
	})
	if err != nil {
		return "", transportError(p.Name(), fmt.Errorf("failed to encode request: %w", err))
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.config.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", transportError(p.Name(), err)
	}

	var resp bedrockResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", responseError(p.Name(), "undecodable body: %v", err)
	}

	if len(resp.Content) == 0 {
		return "", responseError(p.Name(), "missing content in response: %s", string(out.Body))
	}

	translated := strings.TrimSpace(resp.Content[0].Text)
	if translated == "" {
		return "", responseError(p.Name(), "empty text in response")
	}
	return translated, nil
}
