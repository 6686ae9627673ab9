// Package feed implements incremental change detection over explorer
// feeds.
//
// Explorer endpoints return newest-first pages with no "since" parameter,
// so each poll walks the page down to the last key it has seen and emits
// only the remainder, oldest first. A bounded seen-set suppresses events
// that surface on more than one feed.
package feed
