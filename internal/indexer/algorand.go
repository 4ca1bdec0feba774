package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/adambennett/Planetwatcher-Server/internal/models"
	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

// requestTimeout caps a single indexer round trip so a stalled query cannot
// hold a wallet pipeline past the next scan cycle.
const requestTimeout = 30 * time.Second

// searchResponse represents the body of a /v2/transactions query.
type searchResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// Client queries an Algorand indexer over its REST API.
type Client struct {
	logger  *logger.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SearchTransactions returns the transactions involving address confirmed
// at or after afterDate.
func (c *Client) SearchTransactions(ctx context.Context, address, afterDate string) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("after-time", afterDate)
	requestURL := fmt.Sprintf("%s/v2/transactions?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read indexer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("indexer returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse indexer response: %w", err)
	}

	c.logger.Debug("Indexer query completed ", "address ", address, " transactions ", len(parsed.Transactions))
	return parsed.Transactions, nil
}
