package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-telegram/bot"
)

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"forbidden", fmt.Errorf("send: %w", bot.ErrorForbidden), true},
		{"chat not found", errors.New("bad request: chat not found"), true},
		{"kicked", errors.New("forbidden: bot was kicked from the group chat"), true},
		{"deactivated", errors.New("forbidden: user is deactivated"), true},
		{"rate limited", errors.New("too many requests: retry after 30"), false},
		{"network", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanent(tt.err); got != tt.want {
				t.Errorf("isPermanent(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrRecipientGoneUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("chat 42 unreachable: %w",
		errors.Join(ErrRecipientGone, bot.ErrorForbidden))

	if !errors.Is(wrapped, ErrRecipientGone) {
		t.Error("errors.Is(wrapped, ErrRecipientGone) = false")
	}
	if !errors.Is(wrapped, bot.ErrorForbidden) {
		t.Error("errors.Is(wrapped, bot.ErrorForbidden) = false")
	}
}

func TestSenderFunc(t *testing.T) {
	var gotChat any
	s := SenderFunc(func(ctx context.Context, chatID any, text string, mode ParseMode) error {
		gotChat = chatID
		return nil
	})

	if err := s.Send(context.Background(), int64(42), "hi", ModePlain); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotChat != int64(42) {
		t.Errorf("chatID = %v, want 42", gotChat)
	}
}
