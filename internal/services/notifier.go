package services

import (
	"context"
	"errors"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"go.uber.org/zap"
)

// EmailSender and SMSSender deliver a login code over one channel.
type EmailSender interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

type SMSSender interface {
	SendLoginCode(ctx context.Context, phone, code string) error
}

// CodeNotifier routes login codes to email when the contact has one, else SMS.
// When neither channel is configured the code is only logged in development.
type CodeNotifier struct {
	Email  EmailSender
	SMS    SMSSender
	DevLog bool
	Logger *zap.Logger
}

var errNoChannel = errors.New("no delivery channel configured for contact")

func (n *CodeNotifier) SendCode(ctx context.Context, contact models.Contact, code string) error {
	switch {
	case contact.Email != "" && n.Email != nil:
		return n.Email.SendLoginCode(ctx, contact.Email, code)
	case contact.Phone != "" && n.SMS != nil:
		return n.SMS.SendLoginCode(ctx, contact.Phone, code)
	}

	if n.DevLog && n.Logger != nil {
		n.Logger.Info("login code (no delivery channel)",
			zap.String("email", contact.Email),
			zap.String("phone", contact.Phone),
			zap.String("code", code))
		return nil
	}
	return errNoChannel
}
