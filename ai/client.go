package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"

	streamTimeout = 30 * time.Second
	visionTimeout = 60 * time.Second

	streamMaxTokens = 4096
	visionMaxTokens = 2048

	streamTemperature = 0.7
	visionTemperature = 0.3
)

// Client calls an OpenRouter-compatible chat completions API.
type Client struct {
	api *openai.Client
}

// ClientConfig configures a Client.
type ClientConfig struct {
	APIKey  string
	BaseURL string // defaults to the OpenRouter API
	Referer string // sent as HTTP-Referer, OpenRouter's app attribution
	Title   string // sent as X-Title
}

// NewClient creates a Client for the configured API.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai: API key not configured")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	} else {
		oc.BaseURL = defaultBaseURL
	}
	if cfg.Referer != "" || cfg.Title != "" {
		oc.HTTPClient = &http.Client{
			Transport: &attributionTransport{referer: cfg.Referer, title: cfg.Title},
		}
	}
	return &Client{api: openai.NewClientWithConfig(oc)}, nil
}

// attributionTransport adds OpenRouter's app attribution headers.
type attributionTransport struct {
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// Call streams a chat completion from one model, feeding the accumulated
// text to onChunk after every delta.
func (c *Client) Call(ctx context.Context, model Model, systemPrompt string, messages []Message, noSystemRole bool, onChunk func(full string)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, streamTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       model.ID,
		Messages:    buildMessages(systemPrompt, messages, noSystemRole),
		Stream:      true,
		MaxTokens:   streamMaxTokens,
		Temperature: streamTemperature,
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", wrapAPIError(err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", wrapAPIError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if onChunk != nil {
			onChunk(full.String())
		}
	}

	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from model")
	}
	return full.String(), nil
}

// CallVision makes one non-streaming completion with an image attached.
func (c *Client) CallVision(ctx context.Context, model Model, systemPrompt, userPrompt, imageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: model.ID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
		MaxTokens:   visionMaxTokens,
		Temperature: visionTemperature,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages prepends the system prompt, or merges it into the first user
// turn for models that reject the system role.
func buildMessages(systemPrompt string, messages []Message, noSystemRole bool) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if noSystemRole {
		first := ""
		rest := messages
		if len(messages) > 0 {
			first = messages[0].Content
			rest = messages[1:]
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("[INSTRUCTIONS]\n%s\n[/INSTRUCTIONS]\n\n%s", systemPrompt, first),
		})
		for _, m := range rest {
			out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
		}
		return out
	}
	out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// wrapAPIError surfaces the HTTP status code in the error text so the
// fallback logic can classify it.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("API error %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}
