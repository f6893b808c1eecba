package checkout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"staynest-backend/internal/domain"
	"staynest-backend/pkg/logger"

	"github.com/goccy/go-json"
)

// Client talks to the hosted checkout collaborator: one POST creates a
// session and returns the URL the browser is redirected to. Everything
// past that URL is the provider's state machine, not ours.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sessionRequest struct {
	Listing      string  `json:"listing"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	GuestsCount  int     `json:"guestsCount"`
	TotalPrice   float64 `json:"totalPrice"`
}

type sessionResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// CreateSession implements domain.CheckoutSessionCreator. Transient
// failures are retried with a short backoff; non-429 4xx responses are
// treated as permanent and not retried.
func (c *Client) CreateSession(ctx context.Context, req domain.CheckoutRequest, totalPrice float64) (*domain.CheckoutSession, error) {
	payload := sessionRequest{
		Listing:      req.ListingID,
		CheckInDate:  req.CheckInDate.Format(time.RFC3339),
		CheckOutDate: req.CheckOutDate.Format(time.RFC3339),
		GuestsCount:  req.GuestsCount,
		TotalPrice:   totalPrice,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	url := c.baseURL + "/v1/checkout/sessions"

	var lastErr error
	for i := 0; i < 3; i++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build session request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * time.Second)
			continue
		}

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			var session sessionResponse
			err := json.NewDecoder(resp.Body).Decode(&session)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: malformed session response: %w", domain.ErrCheckoutUnavailable, err)
			}
			if session.CheckoutURL == "" {
				return nil, fmt.Errorf("%w: session response missing checkoutUrl", domain.ErrCheckoutUnavailable)
			}
			return &domain.CheckoutSession{CheckoutURL: session.CheckoutURL}, nil
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("checkout provider returned status %d: %s", resp.StatusCode, string(respBody))

		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		time.Sleep(time.Duration(i+1) * time.Second)
	}

	logger.Error().Err(lastErr).Msg("Checkout session creation failed")
	return nil, fmt.Errorf("%w: %w", domain.ErrCheckoutUnavailable, lastErr)
}
