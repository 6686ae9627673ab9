// Package notify delivers alert messages to Telegram and handles the
// bot's command surface.
//
// Watchers talk to the Sender interface only. The Telegram
// implementation distinguishes permanent delivery failures (bot blocked,
// chat deleted) from transient ones by wrapping ErrRecipientGone, so the
// caller can drop dead subscribers instead of retrying them forever.
package notify
