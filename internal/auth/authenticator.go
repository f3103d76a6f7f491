package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/chachabrian/wodlog-backend/pkg/utils"
	"go.uber.org/zap"
)

type Options struct {
	ChallengeTTL    time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
	// EchoCode returns the plaintext code to the caller. Development only.
	EchoCode bool
}

func DefaultOptions() Options {
	return Options{
		ChallengeTTL:    10 * time.Minute,
		RateLimitWindow: 5 * time.Minute,
		RateLimitMax:    3,
	}
}

// Authenticator runs the request-code / verify-code flow and validates tokens.
type Authenticator struct {
	challenges ChallengeStore
	accounts   AccountStore
	sender     CodeSender
	tokens     *TokenIssuer
	clock      Clock
	codes      CodeGenerator
	opts       Options
	log        *zap.Logger
}

type Deps struct {
	Challenges ChallengeStore
	Accounts   AccountStore
	Sender     CodeSender
	Tokens     *TokenIssuer
	Clock      Clock
	Codes      CodeGenerator
	Logger     *zap.Logger
}

func NewAuthenticator(d Deps, opts Options) *Authenticator {
	if d.Clock == nil {
		d.Clock = SystemClock
	}
	if d.Codes == nil {
		d.Codes = RandomCodes
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Authenticator{
		challenges: d.Challenges,
		accounts:   d.Accounts,
		sender:     d.Sender,
		tokens:     d.Tokens,
		clock:      d.Clock,
		codes:      d.Codes,
		opts:       opts,
		log:        d.Logger,
	}
}

type ChallengeResult struct {
	Accepted  bool
	ExpiresAt time.Time
	DevCode   string
}

// RequestChallenge issues a new code for contact and hands it to the sender.
// Delivery failures are logged, not returned.
func (a *Authenticator) RequestChallenge(ctx context.Context, contact models.Contact) (*ChallengeResult, error) {
	contact = contact.Normalize()
	if !contact.Valid() {
		return nil, ErrInvalidInput
	}

	now := a.clock.Now()
	recent, err := a.challenges.CountChallengesSince(ctx, contact, now.Add(-a.opts.RateLimitWindow))
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if recent >= a.opts.RateLimitMax {
		return nil, ErrRateLimited
	}

	code, err := a.codes.Generate()
	if err != nil {
		return nil, err
	}

	otp := &models.OTP{
		Email:     contact.EmailPtr(),
		Phone:     contact.PhonePtr(),
		CodeHash:  utils.HashOTP(code),
		CreatedAt: now,
		ExpiresAt: now.Add(a.opts.ChallengeTTL),
	}
	if err := a.challenges.CreateChallenge(ctx, otp); err != nil {
		return nil, err
	}

	if a.sender != nil {
		if err := a.sender.SendCode(ctx, contact, code); err != nil {
			a.log.Warn("login code delivery failed", zap.Uint("challenge_id", otp.ID), zap.Error(err))
		}
	}

	res := &ChallengeResult{Accepted: true, ExpiresAt: otp.ExpiresAt}
	if a.opts.EchoCode {
		res.DevCode = code
	}
	return res, nil
}

type VerifyResult struct {
	User            *models.User
	NeedsOnboarding bool
}

// VerifyChallenge consumes a code and returns the account it logs into,
// creating the account on first login.
func (a *Authenticator) VerifyChallenge(ctx context.Context, contact models.Contact, code string) (*VerifyResult, error) {
	contact = contact.Normalize()
	if !contact.Valid() {
		return nil, ErrInvalidInput
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	now := a.clock.Now()
	otp, err := a.challenges.ConsumeChallenge(ctx, contact, code, now)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, ErrInvalidOrExpiredCode
	}

	user, err := a.findOrCreate(ctx, contact, now)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{User: user, NeedsOnboarding: user.NeedsOnboarding()}, nil
}

func (a *Authenticator) findOrCreate(ctx context.Context, contact models.Contact, now time.Time) (*models.User, error) {
	user, err := a.accounts.FindUserByContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := a.accounts.TouchLastLogin(ctx, user.ID, now); err != nil {
			return nil, err
		}
		user.LastLogin = now
		return user, nil
	}

	user = models.NewUserFor(contact, now)
	err = a.accounts.CreateUser(ctx, user)
	if errors.Is(err, store.ErrConflict) {
		// Lost a first-login race with another verification for the same contact.
		existing, ferr := a.accounts.FindUserByContact(ctx, contact)
		if ferr != nil {
			return nil, ferr
		}
		if existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	a.log.Info("account created", zap.Uint("user_id", user.ID))
	return user, nil
}

func (a *Authenticator) IssueToken(userID uint) (string, error) {
	return a.tokens.Issue(userID)
}

// ValidateToken returns the account id a token was issued to.
func (a *Authenticator) ValidateToken(ctx context.Context, raw string) (uint, error) {
	if raw == "" {
		return 0, ErrMissingToken
	}
	userID, err := a.tokens.Parse(raw)
	if err != nil {
		return 0, err
	}
	user, err := a.accounts.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrAccountNotFound
	}
	return userID, nil
}
