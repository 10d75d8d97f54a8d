package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:        srv.URL,
		APIKey:         "secret",
		NFTContract:    "0xnft",
		RewardContract: "0xreward",
	})
}

func TestBalancesAndAllowance(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contracts/0xnft/balance-of/0xabc", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"balance": 14})
	})
	mux.HandleFunc("/contracts/0xreward/balance-of/0xabc", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"balance": 2500.75})
	})
	mux.HandleFunc("/contracts/0xreward/allowance/0xabc/0xcustodian", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"allowance": 900})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	nfts, err := c.NFTBalanceOf(ctx, "0xabc")
	if err != nil {
		t.Fatalf("NFTBalanceOf: %v", err)
	}
	if nfts != 14 {
		t.Errorf("nft balance = %d, want 14", nfts)
	}

	bal, err := c.RewardBalanceOf(ctx, "0xabc")
	if err != nil {
		t.Fatalf("RewardBalanceOf: %v", err)
	}
	if bal != 2500.75 {
		t.Errorf("reward balance = %v, want 2500.75", bal)
	}

	allowance, err := c.Allowance(ctx, "0xabc", "0xcustodian")
	if err != nil {
		t.Fatalf("Allowance: %v", err)
	}
	if allowance != 900 {
		t.Errorf("allowance = %v, want 900", allowance)
	}
}

func TestMintReturnsHash(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contracts/0xreward/mint", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["to"] != "0xabc" || body["amount"] != 50.0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"hash": "0xdeadbeef"})
	})

	c := newTestClient(t, mux)
	hash, err := c.Mint(context.Background(), "0xabc", 50)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if hash != "0xdeadbeef" {
		t.Errorf("hash = %q, want 0xdeadbeef", hash)
	}
}

func TestGetTransactionNotVisibleYet(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	tx, err := c.GetTransaction(context.Background(), "0x123")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if tx != nil {
		t.Errorf("tx = %+v, want nil for unseen transaction", tx)
	}
}

func TestWaitForConfirmation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/0x123", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Transaction{Hash: "0x123", Status: "confirmed", Success: true})
	})

	c := newTestClient(t, mux)
	tx, err := c.WaitForConfirmation(context.Background(), "0x123", 5*time.Second)
	if err != nil {
		t.Fatalf("WaitForConfirmation: %v", err)
	}
	if !tx.Success || tx.Status != "confirmed" {
		t.Errorf("tx = %+v, want confirmed success", tx)
	}
}

func TestWaitForConfirmationRevertedTransaction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/0xbad", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Transaction{Hash: "0xbad", Status: "failed", Success: false})
	})

	c := newTestClient(t, mux)
	tx, err := c.WaitForConfirmation(context.Background(), "0xbad", 5*time.Second)
	if err == nil {
		t.Fatal("WaitForConfirmation accepted a reverted transaction")
	}
	if tx != nil {
		t.Errorf("tx = %+v, want nil on revert", tx)
	}
}

func TestCurrentBlock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/latest", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int64{"number": 123456, "timestamp": 1700000000})
	})

	c := newTestClient(t, mux)
	number, ts, err := c.CurrentBlock(context.Background())
	if err != nil {
		t.Fatalf("CurrentBlock: %v", err)
	}
	if number != 123456 || ts != 1700000000 {
		t.Errorf("block = %d@%d, want 123456@1700000000", number, ts)
	}
}
