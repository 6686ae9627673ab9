package explorer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wchain-tools/wco-alertbot/internal/model"
)

// Direction filters for AddressTransactions.
const (
	FilterTo   = "to"
	FilterFrom = "from"
)

// AddressTransactions fetches the newest transactions touching an address.
// filter narrows direction ("to"/"from", "" for both); limit > 0 caps the
// page client-side (the API fixes its own page size).
func (c *Client) AddressTransactions(ctx context.Context, addr, filter string, limit int) ([]model.Transaction, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var resp txPage
	if err := c.get(ctx, "/addresses/"+addr+"/transactions", query, &resp); err != nil {
		return nil, fmt.Errorf("get address transactions %s: %w", addr, err)
	}

	return c.convertTransactions(capItems(resp.Items, limit)), nil
}

// AddressInternalTransactions fetches the newest internal transactions for
// an address.
func (c *Client) AddressInternalTransactions(ctx context.Context, addr string, limit int) ([]model.InternalTransaction, error) {
	var resp internalTxPage
	if err := c.get(ctx, "/addresses/"+addr+"/internal-transactions", nil, &resp); err != nil {
		return nil, fmt.Errorf("get internal transactions %s: %w", addr, err)
	}

	return c.convertInternalTxs(capItems(resp.Items, limit)), nil
}

// AddressLogs fetches the newest event logs emitted by a contract.
func (c *Client) AddressLogs(ctx context.Context, addr string, limit int) ([]model.LogEntry, error) {
	var resp logPage
	if err := c.get(ctx, "/addresses/"+addr+"/logs", nil, &resp); err != nil {
		return nil, fmt.Errorf("get address logs %s: %w", addr, err)
	}

	return c.convertLogs(capItems(resp.Items, limit)), nil
}

// RecentTransactions fetches the newest validated transactions network-wide.
func (c *Client) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("filter", "validated")

	var resp txPage
	if err := c.get(ctx, "/transactions", query, &resp); err != nil {
		return nil, fmt.Errorf("get recent transactions: %w", err)
	}

	return c.convertTransactions(capItems(resp.Items, limit)), nil
}

// TransactionTokenTransfers fetches the token transfers attached to a
// transaction.
func (c *Client) TransactionTokenTransfers(ctx context.Context, hash string) ([]model.TokenTransfer, error) {
	var resp tokenTransferPage
	if err := c.get(ctx, "/transactions/"+hash+"/token-transfers", nil, &resp); err != nil {
		return nil, fmt.Errorf("get token transfers %s: %w", hash, err)
	}

	return c.convertTokenTransfers(resp.Items), nil
}

// Token fetches ERC-20 metadata for a token contract.
func (c *Client) Token(ctx context.Context, addr string) (model.TokenInfo, error) {
	var resp wireToken
	if err := c.get(ctx, "/tokens/"+addr, nil, &resp); err != nil {
		return model.TokenInfo{}, fmt.Errorf("get token %s: %w", addr, err)
	}

	info := convertToken(resp)
	if info.Address == "" {
		info.Address = addr
	}
	return info, nil
}

// Stats fetches chain-wide counters.
func (c *Client) Stats(ctx context.Context) (model.NetworkStats, error) {
	var resp wireStats
	if err := c.get(ctx, "/stats", nil, &resp); err != nil {
		return model.NetworkStats{}, fmt.Errorf("get stats: %w", err)
	}

	return convertStats(resp), nil
}

func capItems[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
