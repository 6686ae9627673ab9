package explorer

import (
	"strconv"
	"strings"
	"time"

	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
)

// Conversion from wire shapes to model types. Items the explorer returns
// malformed are dropped with a warning; one bad row must not poison a
// whole page.

func (c *Client) convertTransactions(items []wireTx) []model.Transaction {
	out := make([]model.Transaction, 0, len(items))
	for _, w := range items {
		tx, ok := c.convertTransaction(w)
		if !ok {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (c *Client) convertTransaction(w wireTx) (model.Transaction, bool) {
	if w.Hash == "" {
		c.logger.Warn("dropping transaction without hash")
		return model.Transaction{}, false
	}
	value, err := format.ParseWei(w.Value)
	if err != nil {
		c.logger.Warn("dropping transaction with bad value",
			"hash", w.Hash,
			"error", err,
		)
		return model.Transaction{}, false
	}

	tx := model.Transaction{
		Hash:      strings.ToLower(w.Hash),
		Value:     value,
		Method:    w.Method,
		TxTypes:   w.TxTypes,
		Status:    w.Status,
		Timestamp: parseTimestamp(w.Timestamp),
	}
	if w.From != nil {
		tx.From = strings.ToLower(w.From.Hash)
		tx.FromIsContract = w.From.IsContract
	}
	if w.To != nil {
		tx.To = strings.ToLower(w.To.Hash)
		tx.ToIsContract = w.To.IsContract
	}
	return tx, true
}

func (c *Client) convertInternalTxs(items []wireInternalTx) []model.InternalTransaction {
	out := make([]model.InternalTransaction, 0, len(items))
	for _, w := range items {
		if w.TransactionHash == "" {
			c.logger.Warn("dropping internal transaction without hash")
			continue
		}
		value, err := format.ParseWei(w.Value)
		if err != nil {
			c.logger.Warn("dropping internal transaction with bad value",
				"hash", w.TransactionHash,
				"error", err,
			)
			continue
		}

		it := model.InternalTransaction{
			TxHash:    strings.ToLower(w.TransactionHash),
			Index:     w.Index,
			Value:     value,
			CallType:  w.Type,
			Timestamp: parseTimestamp(w.Timestamp),
		}
		if w.From != nil {
			it.From = strings.ToLower(w.From.Hash)
		}
		if w.To != nil {
			it.To = strings.ToLower(w.To.Hash)
			it.ToIsContract = w.To.IsContract
		}
		out = append(out, it)
	}
	return out
}

func (c *Client) convertLogs(items []wireLog) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(items))
	for _, w := range items {
		l := model.LogEntry{
			TxHash:      strings.ToLower(w.TransactionHash),
			BlockNumber: w.BlockNumber,
			Index:       w.Index,
			Topics:      w.Topics,
		}
		if w.Address != nil {
			l.Address = strings.ToLower(w.Address.Hash)
		}
		if w.Decoded != nil {
			l.Params = make([]model.LogParam, 0, len(w.Decoded.Parameters))
			for _, p := range w.Decoded.Parameters {
				l.Params = append(l.Params, model.LogParam{
					Name:  p.Name,
					Type:  p.Type,
					Value: p.Value,
				})
			}
		}
		if l.Key() == "" {
			c.logger.Warn("dropping log without block number or hash")
			continue
		}
		out = append(out, l)
	}
	return out
}

func (c *Client) convertTokenTransfers(items []wireTokenTransfer) []model.TokenTransfer {
	out := make([]model.TokenTransfer, 0, len(items))
	for _, w := range items {
		amount, err := format.ParseWei(w.Total.Value)
		if err != nil {
			c.logger.Warn("dropping token transfer with bad amount",
				"hash", w.TransactionHash,
				"error", err,
			)
			continue
		}

		tt := model.TokenTransfer{
			TxHash: strings.ToLower(w.TransactionHash),
			Token:  convertToken(w.Token),
			Amount: amount,
		}
		if w.From != nil {
			tt.From = strings.ToLower(w.From.Hash)
		}
		if w.To != nil {
			tt.To = strings.ToLower(w.To.Hash)
		}
		out = append(out, tt)
	}
	return out
}

func convertToken(w wireToken) model.TokenInfo {
	decimals := 18
	if w.Decimals != "" {
		if d, err := strconv.Atoi(w.Decimals); err == nil {
			decimals = d
		}
	}
	return model.TokenInfo{
		Address:  strings.ToLower(w.Address),
		Name:     w.Name,
		Symbol:   w.Symbol,
		Decimals: decimals,
	}
}

func convertStats(w wireStats) model.NetworkStats {
	return model.NetworkStats{
		TotalTransactions: parseInt64(w.TotalTransactions),
		TotalAddresses:    parseInt64(w.TotalAddresses),
		TotalBlocks:       parseInt64(w.TotalBlocks),
		AverageBlockTime:  time.Duration(w.AverageBlockTime * float64(time.Millisecond)),
	}
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// parseTimestamp handles the explorer's RFC 3339 timestamps. A zero time
// stands in for anything unparseable.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
