// Package imagehost uploads user-submitted images to an external image host
// and returns the hosted URL.
package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/resilience/circuitbreaker"
	"github.com/thedevarpan/dot-developer/internal/resilience/retry"
)

// Config holds the credentials and endpoint for the Cloudinary upload API.
type Config struct {
	// CloudName identifies the Cloudinary account.
	CloudName string

	// APIKey is the public API key.
	APIKey string

	// APISecret signs upload requests. Never logged.
	APISecret string

	// BaseURL overrides the API endpoint. Empty uses the production API.
	BaseURL string
}

// Validate checks that the required credentials are present.
func (c Config) Validate() error {
	if c.CloudName == "" {
		return errors.New("cloudinary cloud name is required")
	}
	if c.APIKey == "" {
		return errors.New("cloudinary api key is required")
	}
	if c.APISecret == "" {
		return errors.New("cloudinary api secret is required")
	}
	return nil
}

const defaultBaseURL = "https://api.cloudinary.com"

// Cloudinary uploads base64-encoded images to the Cloudinary upload API.
// Requests run through a circuit breaker and limited retry so a slow or
// failing host degrades uploads instead of tying up request handlers.
type Cloudinary struct {
	cfg            Config
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewCloudinary creates a Cloudinary uploader with the given configuration.
// When client is nil a default client with a 30 second timeout is used.
func NewCloudinary(cfg Config, client *http.Client) (*Cloudinary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cloudinary{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ImageHostConfig()),
		retryConfig:    retry.ImageHostConfig(),
	}, nil
}

// Upload sends a base64-encoded image to the host and returns the secure URL
// of the uploaded asset. publicID becomes the asset identifier on the host,
// so uploading again with the same publicID replaces the previous image.
func (c *Cloudinary) Upload(ctx context.Context, base64Image, publicID string) (string, error) {
	var secureURL string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doUpload(ctx, base64Image, publicID)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("image host circuit breaker open, upload rejected",
					slog.String("public_id", publicID),
					slog.String("state", c.circuitBreaker.State().String()))
			}
			return err
		}
		secureURL = result.(string)
		return nil
	})
	if retryErr != nil {
		metrics.RecordImageUpload(false)
		return "", retryErr
	}

	metrics.RecordImageUpload(true)
	return secureURL, nil
}

// doUpload performs one upload attempt without retry or circuit breaker.
func (c *Cloudinary) doUpload(ctx context.Context, base64Image, publicID string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("file", base64Image)
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", c.sign(publicID, timestamp))

	base := c.cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/v1_1/%s/auto/upload", base, c.cfg.CloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("image host upload failed: %s", strings.TrimSpace(string(body))),
		}
	}

	var parsed struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", errors.New("image host response missing secure_url")
	}
	return parsed.SecureURL, nil
}

// sign produces the Cloudinary request signature: the SHA-1 hex digest of
// the signed parameters in alphabetical order followed by the API secret.
func (c *Cloudinary) sign(publicID, timestamp string) string {
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.cfg.APISecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}
