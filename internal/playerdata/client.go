package playerdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrAccountNotLinked = errors.New("player account has no chain address")
	ErrNoSuchKey        = errors.New("player data key not found")
)

// Client reads and writes the small per-account key-value bag on the
// hosted player-account service. Off-chain currency balances and the chain
// address linkage live there.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// Config holds the title identity and admin credentials.
type Config struct {
	// BaseURL overrides the default endpoint, mainly for tests.
	BaseURL   string
	TitleID   string
	SecretKey string
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.playfabapi.com", cfg.TitleID)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type dataResponse struct {
	Data struct {
		Data map[string]struct {
			Value string `json:"Value"`
		} `json:"Data"`
	} `json:"data"`
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-SecretKey", c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("player API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("player API error: %s - %s", resp.Status, string(errBody))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// readKey fetches one key from the given data endpoint.
func (c *Client) readKey(ctx context.Context, path, accountID, key string) (string, error) {
	var out dataResponse
	body := map[string]interface{}{"playFabId": accountID, "Keys": []string{key}}
	if err := c.post(ctx, path, body, &out); err != nil {
		return "", err
	}

	entry, ok := out.Data.Data[key]
	if !ok {
		return "", ErrNoSuchKey
	}
	return entry.Value, nil
}

// Balance reads an off-chain currency balance ("xRES" or "xREC") for an
// account. A missing key reads as zero: the account simply never earned any.
func (c *Client) Balance(ctx context.Context, accountID, currencyKey string) (float64, error) {
	raw, err := c.readKey(ctx, "/Admin/GetUserReadOnlyData", accountID, currencyKey)
	if err != nil {
		if errors.Is(err, ErrNoSuchKey) {
			return 0, nil
		}
		return 0, err
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s balance %q: %w", currencyKey, raw, err)
	}
	return value, nil
}

// SetBalance overwrites an off-chain currency balance for an account.
func (c *Client) SetBalance(ctx context.Context, accountID, currencyKey string, value float64) error {
	body := map[string]interface{}{
		"playFabId": accountID,
		"Data": map[string]string{
			currencyKey: strconv.FormatFloat(value, 'f', -1, 64),
		},
	}
	return c.post(ctx, "/Admin/UpdateUserReadOnlyData", body, nil)
}

// ChainAddress returns the chain address linked to an account.
func (c *Client) ChainAddress(ctx context.Context, accountID string) (string, error) {
	raw, err := c.readKey(ctx, "/Admin/GetUserInternalData", accountID, "chainAddress")
	if err != nil {
		if errors.Is(err, ErrNoSuchKey) {
			return "", ErrAccountNotLinked
		}
		return "", err
	}
	if raw == "" {
		return "", ErrAccountNotLinked
	}
	return raw, nil
}
