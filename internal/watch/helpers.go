package watch

import (
	"context"

	"github.com/wchain-tools/wco-alertbot/internal/model"
)

// staticStreams wraps a fixed stream set in the discovery signature.
func staticStreams(streams ...Stream) func(ctx context.Context) ([]Stream, error) {
	return func(ctx context.Context) ([]Stream, error) {
		return streams, nil
	}
}

func txItems(txs []model.Transaction) []FeedItem {
	out := make([]FeedItem, len(txs))
	for i, tx := range txs {
		out[i] = FeedItem{Key: tx.Key(), Value: tx}
	}
	return out
}

func internalTxItems(its []model.InternalTransaction) []FeedItem {
	out := make([]FeedItem, len(its))
	for i, it := range its {
		out[i] = FeedItem{Key: it.Key(), Value: it}
	}
	return out
}

func logItems(logs []model.LogEntry) []FeedItem {
	out := make([]FeedItem, len(logs))
	for i, l := range logs {
		out[i] = FeedItem{Key: l.Key(), Value: l}
	}
	return out
}
