package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the custodial signer service that fronts the chain RPC.
// All transaction submission and signing happens on that side; this client
// only reads balances, requests sends and polls confirmations.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	nftContract    string
	rewardContract string
}

// Config points the client at the signer service and the two contracts.
type Config struct {
	BaseURL        string
	APIKey         string
	NFTContract    string
	RewardContract string
	Timeout        time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		nftContract:    cfg.NFTContract,
		rewardContract: cfg.RewardContract,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Transaction is a submitted chain transaction.
type Transaction struct {
	Hash        string `json:"hash"`
	Status      string `json:"status"`
	BlockNumber int64  `json:"block_number"`
	Timestamp   int64  `json:"timestamp"`
	Success     bool   `json:"success"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type allowanceResponse struct {
	Allowance float64 `json:"allowance"`
}

type sendResponse struct {
	Hash string `json:"hash"`
}

type blockResponse struct {
	Number    int64 `json:"number"`
	Timestamp int64 `json:"timestamp"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ledger API error: %s - %s", resp.Status, string(body))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var errNotFound = fmt.Errorf("not found")

// NFTBalanceOf returns how many marketplace NFTs an address holds.
func (c *Client) NFTBalanceOf(ctx context.Context, address string) (int, error) {
	var out balanceResponse
	path := fmt.Sprintf("/contracts/%s/balance-of/%s", c.nftContract, address)
	if err := c.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return int(out.Balance), nil
}

// RewardBalanceOf returns the reward-token balance of an address.
func (c *Client) RewardBalanceOf(ctx context.Context, address string) (float64, error) {
	var out balanceResponse
	path := fmt.Sprintf("/contracts/%s/balance-of/%s", c.rewardContract, address)
	if err := c.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// Allowance returns how much of owner's reward tokens spender may move.
func (c *Client) Allowance(ctx context.Context, owner, spender string) (float64, error) {
	var out allowanceResponse
	path := fmt.Sprintf("/contracts/%s/allowance/%s/%s", c.rewardContract, owner, spender)
	if err := c.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.Allowance, nil
}

// Mint asks the signer to mint reward tokens to an address. Returns the
// transaction hash; confirmation is a separate step.
func (c *Client) Mint(ctx context.Context, to string, amount float64) (string, error) {
	var out sendResponse
	path := fmt.Sprintf("/contracts/%s/mint", c.rewardContract)
	body := map[string]interface{}{"to": to, "amount": amount}
	if err := c.post(ctx, path, body, &out); err != nil {
		return "", err
	}
	return out.Hash, nil
}

// TransferFrom moves reward tokens from an address to another using the
// custodian's allowance.
func (c *Client) TransferFrom(ctx context.Context, from, to string, amount float64) (string, error) {
	var out sendResponse
	path := fmt.Sprintf("/contracts/%s/transfer-from", c.rewardContract)
	body := map[string]interface{}{"from": from, "to": to, "amount": amount}
	if err := c.post(ctx, path, body, &out); err != nil {
		return "", err
	}
	return out.Hash, nil
}

// GetTransaction fetches a transaction by hash; nil when not yet visible.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*Transaction, error) {
	var tx Transaction
	if err := c.get(ctx, "/transactions/"+hash, &tx); err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// WaitForConfirmation polls until the transaction lands or the timeout
// elapses. A mined but reverted transaction is an error, not a result.
func (c *Client) WaitForConfirmation(ctx context.Context, hash string, timeout time.Duration) (*Transaction, error) {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		tx, err := c.GetTransaction(ctx, hash)
		if err != nil {
			return nil, err
		}
		if tx != nil && tx.Status != "pending" {
			if !tx.Success {
				return nil, fmt.Errorf("transaction %s failed on chain (status %s)", hash, tx.Status)
			}
			return tx, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return nil, fmt.Errorf("transaction %s not confirmed within %s", hash, timeout)
}

// CurrentBlock returns the latest block number and its unix timestamp.
func (c *Client) CurrentBlock(ctx context.Context) (int64, int64, error) {
	var out blockResponse
	if err := c.get(ctx, "/blocks/latest", &out); err != nil {
		return 0, 0, err
	}
	return out.Number, out.Timestamp, nil
}
