// Package recaptcha verifies reCAPTCHA v3 tokens.
package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	ErrMissingToken   = errors.New("recaptcha: missing token")
	ErrRejected       = errors.New("recaptcha: verification rejected")
	ErrActionMismatch = errors.New("recaptcha: action mismatch")
	ErrLowScore       = errors.New("recaptcha: score below threshold")
)

// Verifier checks a client token for an expected action.
type Verifier interface {
	Verify(ctx context.Context, token, action, remoteIP string) error
}

// Noop accepts everything. It is used when no secret is configured.
type Noop struct{}

func (Noop) Verify(context.Context, string, string, string) error { return nil }

// HTTPVerifier calls the siteverify endpoint. Any transport or decoding
// error is returned, so callers fail closed.
type HTTPVerifier struct {
	Secret    string
	VerifyURL string
	MinScore  float64
	Client    *http.Client
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *HTTPVerifier) Verify(ctx context.Context, token, action, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}

	endpoint := v.VerifyURL
	if endpoint == "" {
		endpoint = DefaultVerifyURL
	}
	client := v.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("recaptcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("recaptcha: verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recaptcha: verify: unexpected status %d", resp.StatusCode)
	}

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("recaptcha: decode: %w", err)
	}

	if !body.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(body.ErrorCodes, ","))
	}
	if action != "" && body.Action != "" && !strings.EqualFold(body.Action, action) {
		return fmt.Errorf("%w: got %q want %q", ErrActionMismatch, body.Action, action)
	}
	if body.Score < v.MinScore {
		return fmt.Errorf("%w: %.2f < %.2f", ErrLowScore, body.Score, v.MinScore)
	}
	return nil
}

// New returns an HTTPVerifier for a non-empty secret and Noop otherwise.
func New(secret, verifyURL string, minScore float64) Verifier {
	if secret == "" {
		return Noop{}
	}
	return &HTTPVerifier{Secret: secret, VerifyURL: verifyURL, MinScore: minScore}
}
