// Package watch implements the alert watchers.
//
// One engine drives every watcher: fetch the newest page per stream,
// diff it against the persisted cursor, classify the new items into
// alerts, deliver, then commit. The watchers (buyback, whale, exchange
// flow, dex, liquidity) only supply their streams, classification rules
// and message rendering; cursor tracking, dedup, subscriber management
// and persistence are shared.
//
// Cursors advance only after delivery was attempted, so a crash
// mid-cycle re-emits rather than drops. Delivery is at-least-once.
package watch
