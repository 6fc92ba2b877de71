package identity

import (
	"context"
	"log/slog"
	"net/url"
)

// Notifier delivers confirmation tokens to the account holder.
type Notifier interface {
	SendConfirmation(ctx context.Context, email, token string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, email, token string) error

func (f NotifierFunc) SendConfirmation(ctx context.Context, email, token string) error {
	return f(ctx, email, token)
}

// LogNotifier writes the confirmation link to the log instead of mailing
// it. Development and test deployments only.
type LogNotifier struct {
	Logger *slog.Logger

	// BaseURL is the public origin of the API, e.g. http://localhost:8080.
	BaseURL string
}

func (n LogNotifier) SendConfirmation(ctx context.Context, email, token string) error {
	link := n.BaseURL + "/auth/confirm?token=" + url.QueryEscape(token)
	n.Logger.InfoContext(ctx, "confirmation email",
		"email", email,
		"confirmation_token", token,
		"confirmation_url", link,
	)
	return nil
}
