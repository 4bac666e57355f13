package rbac

import (
	"context"
	"fmt"
)

// TemplateKind names the notification template the gateway should render
type TemplateKind string

const (
	// TemplateOTP is a one-time password message
	TemplateOTP TemplateKind = "otp"
	// TemplateVerification is the email ownership verification message
	TemplateVerification TemplateKind = "verification"
	// TemplatePasswordReset is the password reset message
	TemplatePasswordReset TemplateKind = "password_reset"
)

// Notification is a typed send request. Context carries template
// variables (e.g. username, verification_url) the gateway may use;
// the workflow never inspects rendered content.
type Notification struct {
	To      string         `json:"to"`
	Kind    TemplateKind   `json:"kind"`
	Context map[string]any `json:"context,omitempty"`
}

type noopNotifier struct{}

func (noopNotifier) Send(ctx context.Context, notification Notification) error {
	return nil
}

// NewLogNotifier returns a Notifier that prints the send request instead
// of delivering it. Default for local development.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

type logNotifier struct{}

func (logNotifier) Send(ctx context.Context, notification Notification) error {
	fmt.Println("====== SENDING EMAIL NOTIFICATION =======")
	fmt.Printf("to: %s\n", notification.To)
	fmt.Printf("template: %s\n", notification.Kind)
	if link, ok := notification.Context["verification_url"]; ok {
		fmt.Printf("link: %v\n", link)
	}
	return nil
}

func normalizeNotifier(notifier Notifier) Notifier {
	if notifier == nil {
		return noopNotifier{}
	}
	return notifier
}
