package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/imroc/req/v3"
	"golang.org/x/text/language"
)

const defaultDeepLXURL = "http://127.0.0.1:1188/translate"

// DeepLXProvider translates through a DeepLX compatible endpoint
type DeepLXProvider struct {
	url    string
	client *req.Client
}

type deeplxRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type deeplxResponse struct {
	Code int    `json:"code"`
	Data string `json:"data"`
}

// NewDeepLXProvider creates a new DeepLX provider. BaseURL is the full
// translate endpoint.
func NewDeepLXProvider(config *Config) (*DeepLXProvider, error) {
	url := config.BaseURL
	if url == "" {
		url = defaultDeepLXURL
	}

	client := req.C()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &DeepLXProvider{url: url, client: client}, nil
}

// Name returns the provider name
func (p *DeepLXProvider) Name() string {
	return "deeplx"
}

// Translate posts the text to the endpoint
func (p *DeepLXProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	var result deeplxResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&deeplxRequest{
			Text:       text,
			SourceLang: DeepLCode(sourceLang),
			TargetLang: DeepLCode(targetLang),
		}).
		SetSuccessResult(&result).
		Post(p.url)
	if err != nil {
		return "", transportError(p.Name(), err)
	}

	if !resp.IsSuccessState() {
		return "", transportError(p.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if result.Code != 200 || result.Data == "" {
		return "", responseError(p.Name(), "code %d with empty data", result.Code)
	}

	return strings.TrimSpace(result.Data), nil
}

var deeplNames = map[string]string{
	"english":  "EN",
	"chinese":  "ZH",
	"german":   "DE",
	"french":   "FR",
	"spanish":  "ES",
	"japanese": "JA",
	"korean":   "KO",
	"russian":  "RU",
	"italian":  "IT",
}

// DeepLCode maps a language label to the upper-case code DeepL expects
func DeepLCode(label string) string {
	label = strings.TrimSpace(label)
	if code, ok := deeplNames[strings.ToLower(label)]; ok {
		return code
	}

	if tag, err := language.Parse(label); err == nil {
		base, _ := tag.Base()
		return strings.ToUpper(base.String())
	}

	return strings.ToUpper(label)
}
