// Package state persists watcher state across restarts.
//
// All watchers share one pretty-printed JSON document keyed by section
// name. Every write re-reads the file and merges the section in, so
// watchers running on independent schedules never clobber each other's
// sections. A missing or unreadable file degrades to an empty document;
// losing state only means re-baselining, never crashing.
package state
