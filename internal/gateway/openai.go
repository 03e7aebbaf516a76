package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = "You are a helpful assistant that analyzes browser test automation steps and provides structured, concise JSON responses."

// OpenAIGateway talks to an OpenAI-compatible chat completion backend.
// Retries live here and nowhere else: the SDK's built-in retry is
// disabled so the bounded policy below is the only one in play.
type OpenAIGateway struct {
	client openai.Client
	opts   Options
	log    *logrus.Logger
}

// NewOpenAI builds a gateway from explicit credentials and options.
// Credentials are passed in by the caller, never read ad hoc, so the
// converter stays testable with a stub.
func NewOpenAI(apiKey string, opts Options, log *logrus.Logger) (*OpenAIGateway, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai api key is empty; set OPENAI_API_KEY")
	}
	opts = opts.withDefaults()

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAIGateway{
		client: openai.NewClient(clientOpts...),
		opts:   opts,
		log:    log,
	}, nil
}

// Model reports the configured model identifier.
func (g *OpenAIGateway) Model() string {
	return g.opts.Model
}

// Complete sends the prompt and returns the raw response text. Transient
// failures are retried up to MaxRetries attempts with exponential
// backoff; everything else surfaces immediately.
func (g *OpenAIGateway) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr *Error
	for attempt := 1; attempt <= g.opts.MaxRetries; attempt++ {
		text, err := g.complete(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = classify(err)
		lastErr.Attempts = attempt
		if !lastErr.Retryable() || attempt == g.opts.MaxRetries {
			return "", lastErr
		}

		backoff := time.Duration(1<<(attempt-1)) * time.Second
		g.log.Warnf("Gateway call failed (attempt %d/%d), retrying in %s: %v",
			attempt, g.opts.MaxRetries, backoff, err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return "", &Error{Kind: KindTimeout, Attempts: attempt, Cause: ctx.Err()}
		}
	}
	return "", lastErr
}

func (g *OpenAIGateway) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Opt(g.opts.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformedResponse, Cause: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Kind: KindMalformedResponse, Cause: errors.New("empty completion text")}
	}
	return text, nil
}

// classify maps a transport error onto a gateway error kind.
func classify(err error) *Error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Cause: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return &Error{Kind: KindRateLimited, Cause: err}
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return &Error{Kind: KindUnauthorized, Cause: err}
		case apiErr.StatusCode >= 500:
			return &Error{Kind: KindBackend, Cause: err}
		}
		return &Error{Kind: KindMalformedResponse, Cause: err}
	}

	// Network-level failure without an HTTP status.
	return &Error{Kind: KindBackend, Cause: err}
}
