package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is the boundary to the out-of-band delivery collaborator.
// Actual email transport lives outside this service.
type Notifier interface {
	PasswordReset(ctx context.Context, email, token string) error
}

// LogNotifier records outbound notifications instead of delivering them.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) PasswordReset(ctx context.Context, email, token string) error {
	n.log.Info("Password reset link issued",
		zap.String("email", email),
		zap.Int("token_length", len(token)))
	return nil
}
