package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/wchain-tools/wco-alertbot/internal/feed"
	"github.com/wchain-tools/wco-alertbot/internal/metrics"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
	"github.com/wchain-tools/wco-alertbot/internal/state"
)

// FeedItem pairs a cursor key with the fetched payload. Streams with
// different payload types can then share one engine.
type FeedItem struct {
	Key   string
	Value any
}

// Stream is one named feed within a watcher. Fetch returns the newest
// page, newest first. Classify turns a new item into an alert; returning
// (nil, nil) drops the item, and thresholds live inside Classify.
type Stream struct {
	Name     string
	Fetch    func(ctx context.Context) ([]FeedItem, error)
	Classify func(ctx context.Context, item FeedItem) (*model.Alert, error)
}

// Options configures an Engine.
type Options struct {
	Name    string // watcher name, also the state section name
	Streams func(ctx context.Context) ([]Stream, error)
	Render  func(a model.Alert) (string, notify.ParseMode)
	Sender  notify.Sender
	Store   *state.Store
	Logger  *slog.Logger

	// CacheSize > 0 enables the processed-id cache.
	CacheSize int

	// Channel is the fixed delivery target. When empty, alerts broadcast
	// to the subscriber registry instead.
	Channel string

	// Enabled is the configured starting state; a persisted runtime
	// toggle overrides it.
	Enabled bool
}

// section is the persisted per-watcher state.
type section struct {
	Cursors      map[string]string `json:"cursors"`
	Subscribers  []int64           `json:"subscribers,omitempty"`
	ProcessedIDs []string          `json:"processed_ids,omitempty"`
	Enabled      *bool             `json:"alerts_enabled,omitempty"`
}

// Engine runs the poll cycle for one watcher.
type Engine struct {
	name    string
	streams func(ctx context.Context) ([]Stream, error)
	render  func(a model.Alert) (string, notify.ParseMode)
	sender  notify.Sender
	store   *state.Store
	logger  *slog.Logger
	seen    *feed.SeenSet
	subs    *Subscribers
	channel string

	enabled atomic.Bool
	busy    atomic.Bool

	mu      sync.Mutex
	cursors map[string]string
}

// NewEngine creates an engine and restores its persisted state.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		name:    opts.Name,
		streams: opts.Streams,
		render:  opts.Render,
		sender:  opts.Sender,
		store:   opts.Store,
		logger:  logger.With("watcher", opts.Name),
		channel: opts.Channel,
		cursors: make(map[string]string),
	}
	if opts.CacheSize > 0 {
		e.seen = feed.NewSeenSet(opts.CacheSize)
	}
	if opts.Channel == "" {
		e.subs = NewSubscribers()
	}
	e.enabled.Store(opts.Enabled)

	e.restore()
	return e
}

// Name returns the watcher name.
func (e *Engine) Name() string { return e.name }

// Enabled reports the runtime on/off switch.
func (e *Engine) Enabled() bool { return e.enabled.Load() }

// SetEnabled flips the runtime switch and persists it.
func (e *Engine) SetEnabled(on bool) {
	e.enabled.Store(on)
	e.persist()
	e.logger.Info("watcher toggled", "enabled", on)
}

// Toggle flips a chat's subscription and persists immediately. Returns
// the new subscription state.
func (e *Engine) Toggle(chatID int64) bool {
	if e.subs == nil {
		return false
	}
	on := e.subs.Toggle(chatID)
	e.persist()
	return on
}

// IsSubscribed reports whether a chat receives this watcher's alerts.
func (e *Engine) IsSubscribed(chatID int64) bool {
	return e.subs != nil && e.subs.Contains(chatID)
}

// StatusLine summarizes the watcher for the status command.
func (e *Engine) StatusLine() string {
	status := "paused"
	if e.enabled.Load() {
		status = "active"
	}

	e.mu.Lock()
	tracked := len(e.cursors)
	e.mu.Unlock()

	if e.subs != nil {
		return fmt.Sprintf("%s: %s, %d subscribers, %d feeds tracked", e.name, status, e.subs.Len(), tracked)
	}
	return fmt.Sprintf("%s: %s, %d feeds tracked", e.name, status, tracked)
}

// Poll runs one cycle. Overlapping calls are dropped, not queued; a slow
// cycle must not stack a second one on the same cursors.
func (e *Engine) Poll(ctx context.Context) {
	if !e.enabled.Load() {
		return
	}
	// Broadcast watchers with nobody listening make no upstream calls at
	// all; the first subscriber triggers a fresh baseline instead.
	if e.channel == "" && e.subs.Len() == 0 {
		return
	}
	if !e.busy.CompareAndSwap(false, true) {
		e.logger.Debug("previous cycle still running, skipping")
		return
	}
	defer e.busy.Store(false)

	streams, err := e.streams(ctx)
	if err != nil {
		e.logger.Warn("stream discovery failed", "error", err)
		metrics.PollErrors.WithLabelValues(e.name).Inc()
		return
	}

	changed := false
	for _, st := range streams {
		if e.pollStream(ctx, st) {
			changed = true
		}
	}

	if changed {
		e.persist()
	}
	metrics.PollCycles.WithLabelValues(e.name).Inc()
}

// pollStream processes a single stream and reports whether state changed.
func (e *Engine) pollStream(ctx context.Context, st Stream) bool {
	page, err := st.Fetch(ctx)
	if err != nil {
		// Cursor untouched; the next cycle resumes from the same spot.
		e.logger.Warn("fetch failed",
			"stream", st.Name,
			"error", err,
		)
		metrics.PollErrors.WithLabelValues(e.name).Inc()
		return false
	}

	cursor, ok := e.cursor(st.Name)
	if !ok {
		// First sight of this stream: baseline to the newest item and
		// alert on nothing that happened before now. The full page is
		// already in hand, so the baseline reads it rather than making a
		// second single-item request for the newest entry.
		for _, item := range page {
			if item.Key != "" {
				e.setCursor(st.Name, item.Key)
				e.logger.Info("stream baselined",
					"stream", st.Name,
					"cursor", item.Key,
				)
				return true
			}
		}
		return false
	}

	fresh, next := feed.DetectNew(page, func(it FeedItem) string { return it.Key }, cursor)
	if len(fresh) == 0 {
		return false
	}

	for _, item := range fresh {
		alert, err := st.Classify(ctx, item)
		if err != nil {
			e.logger.Warn("classify failed",
				"stream", st.Name,
				"key", item.Key,
				"error", err,
			)
			continue
		}
		if alert == nil {
			continue
		}
		if e.seen != nil && alert.DedupKey != "" {
			if e.seen.Contains(alert.DedupKey) {
				continue
			}
		}

		e.deliver(ctx, *alert)

		if e.seen != nil {
			e.seen.Mark(alert.DedupKey)
		}
	}

	e.setCursor(st.Name, next)
	return true
}

// deliver renders and sends one alert to the channel or all subscribers.
func (e *Engine) deliver(ctx context.Context, a model.Alert) {
	text, mode := e.render(a)

	if e.channel != "" {
		if err := e.sender.Send(ctx, e.channel, text, mode); err != nil {
			e.logger.Warn("delivery failed",
				"channel", e.channel,
				"error", err,
			)
			metrics.DeliveryFailures.WithLabelValues(e.name).Inc()
			return
		}
		metrics.AlertsSent.WithLabelValues(e.name, string(a.Kind)).Inc()
		return
	}

	for _, chatID := range e.subs.List() {
		err := e.sender.Send(ctx, chatID, text, mode)
		switch {
		case err == nil:
			metrics.AlertsSent.WithLabelValues(e.name, string(a.Kind)).Inc()
		case errors.Is(err, notify.ErrRecipientGone):
			e.subs.Remove(chatID)
			metrics.SubscribersDropped.Inc()
			e.logger.Info("subscriber removed", "chat_id", chatID)
		default:
			e.logger.Warn("delivery failed",
				"chat_id", chatID,
				"error", err,
			)
			metrics.DeliveryFailures.WithLabelValues(e.name).Inc()
		}
	}
}

func (e *Engine) cursor(stream string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cursors[stream]
	return c, ok
}

func (e *Engine) setCursor(stream, cursor string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors[stream] = cursor
}

// restore loads the persisted section, if any.
func (e *Engine) restore() {
	var sec section
	ok, err := e.store.Load(e.name, &sec)
	if err != nil {
		e.logger.Warn("state restore failed, starting fresh", "error", err)
		return
	}
	if !ok {
		return
	}

	e.mu.Lock()
	for k, v := range sec.Cursors {
		e.cursors[k] = v
	}
	e.mu.Unlock()

	if e.subs != nil {
		e.subs.Restore(sec.Subscribers)
	}
	if e.seen != nil {
		e.seen.Restore(sec.ProcessedIDs)
	}
	if sec.Enabled != nil {
		e.enabled.Store(*sec.Enabled)
	}

	e.logger.Info("state restored",
		"cursors", len(sec.Cursors),
		"subscribers", len(sec.Subscribers),
		"processed_ids", len(sec.ProcessedIDs),
	)
}

// persist writes the section. A write failure costs replayed alerts
// after a restart, never a crash.
func (e *Engine) persist() {
	e.mu.Lock()
	cursors := make(map[string]string, len(e.cursors))
	for k, v := range e.cursors {
		cursors[k] = v
	}
	e.mu.Unlock()

	sec := section{Cursors: cursors}
	if e.subs != nil {
		sec.Subscribers = e.subs.List()
	}
	if e.seen != nil {
		sec.ProcessedIDs = e.seen.Snapshot()
	}
	enabled := e.enabled.Load()
	sec.Enabled = &enabled

	if err := e.store.Save(e.name, sec); err != nil {
		e.logger.Warn("state persist failed", "error", err)
	}
}

// usdValue converts a wei amount to dollars at the given price. Either
// argument nil means no valuation.
func usdValue(wei *big.Int, price *big.Rat) *big.Rat {
	if wei == nil || price == nil {
		return nil
	}
	wco := new(big.Rat).SetFrac(wei, weiPerWCO)
	return wco.Mul(wco, price)
}

var weiPerWCO = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
