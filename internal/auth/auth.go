// Package auth implements passwordless login: one-time codes delivered by email or SMS,
// exchanged for a signed bearer token.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/pkg/utils"
)

var (
	ErrInvalidInput         = errors.New("exactly one of email or phone is required")
	ErrRateLimited          = errors.New("too many code requests, try again later")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrMissingToken         = errors.New("access token required")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrAccountNotFound      = errors.New("account not found")
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the wall clock in UTC.
var SystemClock Clock = systemClock{}

// CodeGenerator produces six-digit login codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeGeneratorFunc adapts a function to CodeGenerator.
type CodeGeneratorFunc func() (string, error)

func (f CodeGeneratorFunc) Generate() (string, error) { return f() }

// RandomCodes draws codes from crypto/rand.
var RandomCodes CodeGenerator = CodeGeneratorFunc(utils.GenerateOTP)

// ChallengeStore persists login challenges.
type ChallengeStore interface {
	CreateChallenge(ctx context.Context, otp *models.OTP) error
	CountChallengesSince(ctx context.Context, contact models.Contact, since time.Time) (int, error)
	// ConsumeChallenge atomically marks the newest live matching challenge used.
	// It returns (nil, nil) if there is none.
	ConsumeChallenge(ctx context.Context, contact models.Contact, code string, now time.Time) (*models.OTP, error)
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}

// AccountStore finds and creates accounts. Lookups return (nil, nil) when absent.
type AccountStore interface {
	FindUserByContact(ctx context.Context, contact models.Contact) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

// CodeSender delivers a code to a contact.
type CodeSender interface {
	SendCode(ctx context.Context, contact models.Contact, code string) error
}
