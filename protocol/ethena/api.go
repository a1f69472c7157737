package ethena

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	ETHENA_URL      = "https://public.api.ethena.fi/"
	SYNTHETIC_ASSET = "USDe"
	REQUEST_TIMEOUT = 10 * time.Second
)

type EthenaAPI struct {
	// HTTPClient is used for quote requests and may retry idempotent reads.
	HTTPClient *http.Client
	// SubmitClient is used for order submission and never retries.
	SubmitClient *http.Client

	baseURL string
}

// NewEthenaAPI creates the venue client. quoteRetries is the number of retries
// after the initial quote attempt; order submission is never retried.
func NewEthenaAPI(baseURL string, quoteRetries int, timeout time.Duration) *EthenaAPI {
	if baseURL == "" {
		baseURL = ETHENA_URL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout == 0 {
		timeout = REQUEST_TIMEOUT
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = quoteRetries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = timeout

	return &EthenaAPI{
		HTTPClient: retryClient.StandardClient(),
		SubmitClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Pair returns the RFQ pair for the collateral symbol.
func Pair(collateral string) string {
	return fmt.Sprintf("%s/%s", collateral, SYNTHETIC_ASSET)
}

func (a *EthenaAPI) quoteURL(req QuoteRequest) string {
	return fmt.Sprintf(
		"%srfq?pair=%s&type_=%s&side=%s&size=%s&benefactor=%s",
		a.baseURL,
		url.QueryEscape(req.Pair),
		url.QueryEscape(req.Type),
		req.Side,
		url.QueryEscape(req.Size),
		req.Benefactor.Hex(),
	)
}

// GetQuote requests a quote for the pair and side from the venue.
func (a *EthenaAPI) GetQuote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	url := a.quoteURL(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &QuoteError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := a.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &QuoteError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &QuoteError{Err: fmt.Errorf("unexpected status code: %d, %s", resp.StatusCode, url)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QuoteError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	q := new(Quote)
	if err := json.Unmarshal(body, q); err != nil {
		return nil, &QuoteError{Err: fmt.Errorf("failed to unmarshal JSON: %w", err)}
	}
	if err := q.validate(); err != nil {
		return nil, &QuoteError{Err: err}
	}

	log.Debug().Str("rfqID", q.QuoteID).Msgf("Received quote: %s", string(body))
	return q, nil
}

type submitResponse struct {
	Tx    string  `json:"tx"`
	Error *string `json:"error"`
}

// SubmitOrder posts the signed order and returns the settlement transaction reference.
func (a *EthenaAPI) SubmitOrder(ctx context.Context, order *Order, signature Signature) (string, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	url := fmt.Sprintf("%sorder?signature=%s", a.baseURL, signature.Bytes)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.SubmitClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	result := new(submitResponse)
	if err := json.Unmarshal(respBody, result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &SubmissionError{Reason: fmt.Sprintf("unexpected status code: %d", resp.StatusCode)}
		}
		return "", fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if result.Error != nil {
		return "", &SubmissionError{Reason: *result.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &SubmissionError{Reason: fmt.Sprintf("unexpected status code: %d", resp.StatusCode)}
	}
	if result.Tx == "" {
		return "", fmt.Errorf("missing tx in response: %s", string(respBody))
	}

	return result.Tx, nil
}
