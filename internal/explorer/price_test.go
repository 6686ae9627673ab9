package explorer

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestOraclePriceCaching(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"price": "0.0125"}`))
	}))
	defer srv.Close()

	o := NewOracle(srv.URL, "", time.Minute, nil)

	want := big.NewRat(125, 10000)
	for i := 0; i < 3; i++ {
		p, err := o.Price(context.Background())
		if err != nil {
			t.Fatalf("Price failed: %v", err)
		}
		if p.Cmp(want) != 0 {
			t.Errorf("Price = %s, want %s", p.RatString(), want.RatString())
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("oracle called %d times within TTL, want 1", got)
	}
}

func TestOracleStaleFallback(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"price": "0.01"}`))
	}))
	defer srv.Close()

	o := NewOracle(srv.URL, "", time.Nanosecond, nil)

	if _, err := o.Price(context.Background()); err != nil {
		t.Fatalf("initial Price failed: %v", err)
	}

	// TTL has elapsed and the oracle is now failing; the stale value
	// should still come back.
	fail.Store(true)
	time.Sleep(time.Millisecond)

	p, err := o.Price(context.Background())
	if err != nil {
		t.Fatalf("Price with stale fallback failed: %v", err)
	}
	if p.Cmp(big.NewRat(1, 100)) != 0 {
		t.Errorf("stale Price = %s, want 1/100", p.RatString())
	}
}

func TestOracleUnconfigured(t *testing.T) {
	o := NewOracle("", "", time.Minute, nil)

	p, err := o.Price(context.Background())
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}
	if p != nil {
		t.Errorf("Price = %v, want nil when unconfigured", p)
	}
}

func TestOracleSupply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_supply": "1000", "circulating_supply": "600"}`))
	}))
	defer srv.Close()

	o := NewOracle("", srv.URL, time.Minute, nil)
	s, err := o.Supply(context.Background())
	if err != nil {
		t.Fatalf("Supply failed: %v", err)
	}
	if s.Total.Int64() != 1000 || s.Circulating.Int64() != 600 {
		t.Errorf("Supply = %v/%v, want 1000/600", s.Total, s.Circulating)
	}
}
