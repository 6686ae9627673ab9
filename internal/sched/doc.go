// Package sched runs the recurring jobs: one polling loop per watcher at
// its own interval, plus fixed-time daily jobs. Jobs are registered
// explicitly before Start; a panicking job is logged and retried on its
// next tick rather than taking the process down.
package sched
