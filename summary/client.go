package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultAPIVersion      = "v1"
	DefaultTemperature     = float32(0.2)
	DefaultMaxOutputTokens = int32(2048)
	apiKeySetting          = "GEMINI_API_KEY"
)

type GeminiOptions struct {
	Model           string
	BaseURL         string
	APIVersion      string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// GeminiClient sends one prompt per call to the Gemini generateContent
// endpoint. The API key is resolved on every call.
type GeminiClient struct {
	apiKey func() string
	opts   GeminiOptions
	log    *zap.Logger
}

func NewGeminiClient(apiKey func() string, opts GeminiOptions, logger *zap.Logger) *GeminiClient {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxOutputTokens == 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		opts.HTTPClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{apiKey: apiKey, opts: opts, log: logger}
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.opts.Model }

// Configured fails with a ConfigurationError when no API key is set.
func (g *GeminiClient) Configured() error {
	if g.apiKey == nil || g.apiKey() == "" {
		return &ConfigurationError{Key: apiKeySetting}
	}
	return nil
}

// Generate returns the text of the first candidate. A response without
// candidate text yields "{}". No retries are attempted.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (text string, err error) {
	if err := g.Configured(); err != nil {
		return "", err
	}

	rec := &failureRecorder{next: g.opts.HTTPClient.Transport}
	hc := *g.opts.HTTPClient
	hc.Transport = rec

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     g.apiKey(),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &hc,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.opts.BaseURL,
			APIVersion: g.opts.APIVersion,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.log.Debug("gemini request", zap.String("model", g.opts.Model), zap.Int("prompt_chars", len(prompt)))
	started := time.Now()

	// The SDK can panic while decoding an error body it does not recognise.
	defer func() {
		if r := recover(); r != nil {
			extErr := rec.external(fmt.Errorf("gemini sdk panic: %v", r), "")
			g.log.Error("gemini response could not be decoded",
				zap.Int("status", extErr.StatusCode),
				zap.String("details", extErr.Message),
				zap.Any("panic", r),
			)
			text, err = "", extErr
		}
	}()

	resp, err := cli.Models.GenerateContent(ctx, g.opts.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.opts.Temperature),
		MaxOutputTokens: g.opts.MaxOutputTokens,
	})
	if err != nil {
		extErr := externalError(err, rec)
		g.log.Error("gemini request failed",
			zap.Int("status", extErr.StatusCode),
			zap.String("details", extErr.Message),
			zap.Duration("elapsed", time.Since(started)),
		)
		return "", extErr
	}

	text = firstCandidateText(resp)
	g.log.Debug("gemini response", zap.Int("chars", len(text)), zap.Duration("elapsed", time.Since(started)))
	if text == "" {
		return "{}", nil
	}
	return text, nil
}

// failureRecorder keeps the status and body of the last non-2xx response so
// errors can report them however the SDK decodes the envelope.
type failureRecorder struct {
	next   http.RoundTripper
	status int
	body   string
}

func (f *failureRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	next := f.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err != nil || resp.StatusCode < 300 {
		return resp, err
	}

	b, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	f.status = resp.StatusCode
	f.body = strings.TrimSpace(string(b))
	resp.Body = io.NopCloser(bytes.NewReader(b))
	if readErr != nil {
		return nil, readErr
	}
	return resp, nil
}

// external builds the error for a failed call. msg wins over the recorded
// body; the recorded status wins over code.
func (f *failureRecorder) external(err error, msg string, code ...int) *ExternalServiceError {
	status := f.status
	if status == 0 && len(code) > 0 {
		status = code[0]
	}
	if msg == "" {
		msg = f.body
	}
	if msg == "" {
		msg = err.Error()
	}
	return &ExternalServiceError{StatusCode: status, Message: msg, Err: err}
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}

// externalError maps SDK errors onto ExternalServiceError, keeping the vendor
// message (or the raw body the SDK could not parse) and the HTTP status.
func externalError(err error, rec *failureRecorder) *ExternalServiceError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr, err, rec)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fromAPIError(*apiErrPtr, err, rec)
	}
	return rec.external(err, "")
}

func fromAPIError(apiErr genai.APIError, err error, rec *failureRecorder) *ExternalServiceError {
	msg := apiErr.Message
	if msg == "" && rec.body == "" {
		msg = apiErr.Status
	}
	if msg == "" && rec.body == "" {
		msg = "LLM error"
	}
	return rec.external(err, msg, apiErr.Code)
}
