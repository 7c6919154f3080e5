// Package registry calls the external charity registry to confirm that an EIN
// belongs to a recognized public charity. The check is a best-effort trust
// gate: any ambiguous answer counts as "not verified", but transport failures
// are reported distinctly so callers can tell "registry said no" from
// "registry unreachable".
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"givelink/internal/validate"
	"givelink/pkg/platform/circuit"
	"givelink/pkg/platform/sentinel"
)

// Result is the tri-state outcome of a charity check.
type Result string

const (
	// ResultVerified means the registry attested the EIN as a public charity.
	ResultVerified Result = "verified"
	// ResultRejected means the registry answered and declined the attestation,
	// or the EIN was malformed and no call was made.
	ResultRejected Result = "rejected"
	// ResultUnreachable means the registry could not give an answer at all.
	ResultUnreachable Result = "unreachable"
)

// Client queries the charity registry over HTTP. A circuit breaker guards the
// upstream: after consecutive transport failures the client answers
// ResultUnreachable immediately instead of waiting out another timeout. The
// zero value is not usable; construct with New.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		breaker: circuit.New("charity-registry", circuit.WithFailureThreshold(5)),
		logger:  logger,
	}
}

type checkResponse struct {
	Data struct {
		PublicCharity bool `json:"public_charity"`
	} `json:"data"`
}

// Check looks up ein in the registry. A malformed EIN short-circuits to
// ResultRejected without any network call. The returned error is non-nil only
// for ResultUnreachable and wraps sentinel.ErrUnavailable.
func (c *Client) Check(ctx context.Context, ein string) (Result, error) {
	if !validate.EIN(ein) {
		return ResultRejected, nil
	}

	if c.breaker.IsOpen() {
		return ResultUnreachable, fmt.Errorf("charity registry circuit open: %w", sentinel.ErrUnavailable)
	}

	url := fmt.Sprintf("%s/api/public_charity_check/%s", c.baseURL, ein)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ResultUnreachable, fmt.Errorf("build registry request: %w", sentinel.ErrUnavailable)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.recordFailure()
		c.logger.Warn("charity registry unreachable", "error", err)
		return ResultUnreachable, fmt.Errorf("charity registry: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.recordFailure()
		c.logger.Warn("charity registry returned server error", "status", resp.StatusCode)
		return ResultUnreachable, fmt.Errorf("charity registry status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		c.recordSuccess()
		return ResultRejected, nil
	}

	c.recordSuccess()

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// The registry answered but the payload carried no usable attestation.
		c.logger.Warn("charity registry payload undecodable", "error", err)
		return ResultRejected, nil
	}
	if !body.Data.PublicCharity {
		return ResultRejected, nil
	}
	return ResultVerified, nil
}

func (c *Client) recordFailure() {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.Error("charity registry circuit opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess() {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.Info("charity registry circuit closed", "breaker", c.breaker.Name())
	}
}
