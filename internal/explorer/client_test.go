package explorer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://scan.example.com/api/v2")

		if c.baseURL != "https://scan.example.com/api/v2" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://scan.example.com/api/v2")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with options", func(t *testing.T) {
		c := NewClient("https://scan.example.com/api/v2",
			WithTimeout(5*time.Second),
			WithRetries(5, 2*time.Second),
		)
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})
}

func TestAddressTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/addresses/0xwallet/transactions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "to" {
			t.Errorf("filter = %q, want %q", got, "to")
		}
		w.Write([]byte(`{
			"items": [
				{
					"hash": "0xAAA",
					"from": {"hash": "0xF1", "is_contract": false},
					"to": {"hash": "0xWallet", "is_contract": false},
					"value": "1000000000000000000",
					"tx_types": ["coin_transfer"],
					"status": "ok",
					"timestamp": "2025-06-01T10:00:00.000000Z"
				},
				{
					"hash": "0xBBB",
					"from": {"hash": "0xF2", "is_contract": true},
					"to": {"hash": "0xWallet", "is_contract": false},
					"value": "not-a-number",
					"status": "ok"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	txs, err := c.AddressTransactions(context.Background(), "0xwallet", FilterTo, 0)
	if err != nil {
		t.Fatalf("AddressTransactions failed: %v", err)
	}

	// The malformed second row is dropped, not fatal.
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Hash != "0xaaa" {
		t.Errorf("Hash = %q, want lowercased %q", tx.Hash, "0xaaa")
	}
	if tx.From != "0xf1" || tx.To != "0xwallet" {
		t.Errorf("From/To = %q/%q", tx.From, tx.To)
	}
	if tx.Value.String() != "1000000000000000000" {
		t.Errorf("Value = %s", tx.Value)
	}
	if !tx.IsCoinTransfer() {
		t.Error("IsCoinTransfer() = false")
	}
	if tx.Timestamp.IsZero() {
		t.Error("Timestamp not parsed")
	}
}

func TestAddressInternalTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [
				{
					"transaction_hash": "0xCCC",
					"index": 2,
					"from": {"hash": "0xRouter", "is_contract": true},
					"to": {"hash": "0xBuyer", "is_contract": false},
					"value": "500",
					"type": "call"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	its, err := c.AddressInternalTransactions(context.Background(), "0xrouter", 0)
	if err != nil {
		t.Fatalf("AddressInternalTransactions failed: %v", err)
	}
	if len(its) != 1 {
		t.Fatalf("got %d items, want 1", len(its))
	}
	if got := its[0].Key(); got != "0xccc:2" {
		t.Errorf("Key() = %q, want %q", got, "0xccc:2")
	}
	if its[0].ToIsContract {
		t.Error("ToIsContract = true, want false")
	}
}

func TestAddressLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [
				{
					"transaction_hash": "0xDDD",
					"block_number": 1200,
					"index": 4,
					"address": {"hash": "0xPair"},
					"topics": ["0xtopic0"],
					"decoded": {
						"method_call": "Mint(address sender, uint256 amount0, uint256 amount1)",
						"parameters": [
							{"name": "amount0", "type": "uint256", "value": "77"}
						]
					}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	logs, err := c.AddressLogs(context.Background(), "0xpair", 0)
	if err != nil {
		t.Fatalf("AddressLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if got := logs[0].Key(); got != "1200:4" {
		t.Errorf("Key() = %q, want %q", got, "1200:4")
	}
	if got := logs[0].Param("amount0"); got != "77" {
		t.Errorf("Param(amount0) = %q, want %q", got, "77")
	}
}

func TestRetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetries(3, time.Millisecond))
	if _, err := c.RecentTransactions(context.Background(), 0); err != nil {
		t.Fatalf("RecentTransactions failed after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetries(3, time.Millisecond))
	_, err := c.Token(context.Background(), "0xmissing")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.IsRetryable() {
		t.Error("IsRetryable() = true for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestLimitCapsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [
			{"hash": "0x1", "value": "0"},
			{"hash": "0x2", "value": "0"},
			{"hash": "0x3", "value": "0"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	txs, err := c.RecentTransactions(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentTransactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Errorf("got %d transactions, want 2", len(txs))
	}
}
