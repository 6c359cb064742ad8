// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth issues and verifies bearer tokens and turns them into principals
for the access gate.

# Flow

  - GET /api/gettoken exchanges Basic credentials for a signed token.
  - Every guarded request presents 'Authorization: Token <t>'; the token is
    verified and the identity and its roles are reloaded from storage.

Tokens carry only the subject id. Approval and roles are never cached in the
token, so an admin's change takes effect on the very next request.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/sec"
	"github.com/kanoon/kanoon/internal/users/account"
)

// Verification failures. All of them surface as 401; they stay distinct for
// logs and tests.
var (
	ErrTokenInvalid  = sec.ErrTokenInvalid
	ErrTokenExpired  = sec.ErrTokenExpired
	ErrTokenNotFound = errors.New("auth: token subject not found")
)

// Throttle counts failed logins per login name.
type Throttle interface {
	// Blocked reports whether the login has used up its attempts.
	Blocked(ctx context.Context, login string) (bool, error)
	// Fail records one failed attempt.
	Fail(ctx context.Context, login string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, login string) error
}

// Service is the token service.
type Service struct {
	users    account.UserRepository
	roles    account.RoleRepository
	signer   *sec.TokenSigner
	ttl      time.Duration
	throttle Throttle
	lockout  time.Duration
	logger   *slog.Logger
}

// Options configures token lifetime and login throttling.
type Options struct {
	TokenTTL time.Duration
	// Lockout is reported to throttled clients as Retry-After.
	Lockout time.Duration
}

// NewService constructs the token [Service]. throttle may be nil.
func NewService(
	users account.UserRepository,
	roles account.RoleRepository,
	signer *sec.TokenSigner,
	throttle Throttle,
	options Options,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		roles:    roles,
		signer:   signer,
		ttl:      options.TokenTTL,
		throttle: throttle,
		lockout:  options.Lockout,
		logger:   logger,
	}
}

/*
Issue signs a token for user.

Returns:
  - string: Signed token
  - error: Signing failures
*/
func (service *Service) Issue(_ context.Context, user *account.User) (string, error) {
	token, _, err := service.signer.Sign(user.ID, service.ttl)
	if err != nil {
		return "", fmt.Errorf("auth_service_sign_failed: %w", err)
	}
	return token, nil
}

/*
Verify decodes token and reloads the identity it names.

Description: Signature and decoding are checked first, then expiry, then the
subject is looked up. A subject deleted after issuance fails with
[ErrTokenNotFound].
*/
func (service *Service) Verify(ctx context.Context, token string) (*account.User, error) {
	userID, err := service.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return user, nil
}

// Authenticate implements [access.Authenticator].
func (service *Service) Authenticate(ctx context.Context, token string) (*access.Principal, error) {
	user, err := service.Verify(ctx, token)
	if err != nil {
		service.logger.DebugContext(ctx, "token_rejected", slog.Any("error", err))
		return nil, err
	}

	roles, err := service.roles.Roles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &access.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Kind:     string(user.Kind),
		Approved: user.Approved,
		Roles:    access.NewRoleSet(roles...),
	}, nil
}

/*
Login exchanges a username or email and password for a token.

Description: Unknown logins and wrong passwords fail identically. After too
many failures the login is throttled until its window expires.

Returns:
  - string: Signed token
  - error: Unauthorized, RateLimited, or storage failures
*/
func (service *Service) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = account.NormalizeEmail(login)
	}
	key := strings.ToLower(login)

	if service.throttle != nil {
		blocked, err := service.throttle.Blocked(ctx, key)
		if err != nil {
			// Throttling is best effort; a Redis outage must not lock everyone out.
			service.logger.WarnContext(ctx, "login_throttle_unavailable", slog.Any("error", err))
		}
		if blocked {
			return "", apperr.RateLimited(int(service.lockout / time.Second))
		}
	}

	user, err := service.users.FindByLogin(ctx, login)
	if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
		return "", err
	}
	if user == nil || !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.recordFailure(ctx, key)
		return "", apperr.Unauthorized("Invalid login credentials")
	}

	if service.throttle != nil {
		if err := service.throttle.Reset(ctx, key); err != nil {
			service.logger.WarnContext(ctx, "login_throttle_reset_failed", slog.Any("error", err))
		}
	}

	token, err := service.Issue(ctx, user)
	if err != nil {
		return "", err
	}
	service.logger.InfoContext(ctx, "token_issued", slog.Int64("user_id", user.ID))
	return token, nil
}

func (service *Service) recordFailure(ctx context.Context, key string) {
	if service.throttle == nil {
		return
	}
	if err := service.throttle.Fail(ctx, key); err != nil {
		service.logger.WarnContext(ctx, "login_throttle_record_failed", slog.Any("error", err))
	}
}
