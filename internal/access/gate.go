// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kanoon/kanoon/internal/platform/apperr"
)

// Step names, in evaluation order.
const (
	StepCredential = "credential"
	StepApproval   = "approval"
	StepRole       = "role"
	StepOwnership  = "ownership"
)

// TokenScheme is the only scheme accepted on guarded operations.
const TokenScheme = "Token"

// # Collaborators

// Authenticator turns a bearer token into a freshly loaded [Principal].
//
// Implementations return a plain error for token problems (mapped to 401) and
// an [*apperr.AppError] for anything they already classified.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// Target exposes the addressed resource, usually URL and query parameters.
type Target interface {
	Param(name string) string
}

// RoleResolver computes required roles at request time for polymorphic targets.
type RoleResolver func(ctx context.Context, target Target) (RoleSet, error)

// OwnerCheck enforces that a self-scoped resource belongs to the principal.
type OwnerCheck func(ctx context.Context, principal *Principal, target Target) error

// Recorder receives one observation per gate evaluation.
type Recorder interface {
	RecordDecision(operation, step, outcome string)
}

// # Operations

// Operation declares how one API operation is guarded.
type Operation struct {
	// Name identifies the operation in logs and metrics.
	Name string
	// Category selects a static policy. Ignored when Resolve is set.
	Category Category
	// Resolve computes required roles from the target (polymorphic entities).
	Resolve RoleResolver
	// AllowUnapproved skips the approval step.
	AllowUnapproved bool
	// Owner runs last; nil means the operation is not self-scoped.
	Owner OwnerCheck
}

// Credential is a parsed Authorization header.
type Credential struct {
	Scheme string
	Value  string
}

// ParseCredential splits an Authorization header into scheme and value.
func ParseCredential(header string) Credential {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return Credential{Scheme: scheme}
	}
	return Credential{Scheme: scheme, Value: strings.TrimSpace(value)}
}

// OwnedBy fails with an ownership violation unless ownerID is the principal.
func OwnedBy(principal *Principal, ownerID int64) error {
	if principal == nil || principal.UserID != ownerID {
		return apperr.OwnershipViolation()
	}
	return nil
}

// OwnerOf builds an [OwnerCheck] for the entity whose id is in path
// parameter param. A malformed id or a missing row is reported by lookup
// (or as not found) before ownership is compared.
func OwnerOf(param string, lookup func(ctx context.Context, id int64) (int64, error)) OwnerCheck {
	return func(ctx context.Context, principal *Principal, target Target) error {
		id, err := strconv.ParseInt(target.Param(param), 10, 64)
		if err != nil || id <= 0 {
			return apperr.NotFound("Resource")
		}
		ownerID, err := lookup(ctx, id)
		if err != nil {
			return err
		}
		return OwnedBy(principal, ownerID)
	}
}

// # Gate

// evaluation is the state threaded through the pipeline.
type evaluation struct {
	op         Operation
	credential Credential
	target     Target
	principal  *Principal
}

// Step is one named stage of the gate pipeline.
type Step struct {
	Name string
	run  func(ctx context.Context, eval *evaluation) error
}

// Gate runs the fixed check sequence in front of every guarded operation.
//
// A failing step stops the pipeline and its error is returned unchanged; the
// operation body must not run. The gate never writes to storage.
type Gate struct {
	authenticator Authenticator
	recorder      Recorder
	logger        *slog.Logger
	steps         []Step
}

// NewGate wires the pipeline. recorder may be nil.
func NewGate(authenticator Authenticator, recorder Recorder, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	gate := &Gate{
		authenticator: authenticator,
		recorder:      recorder,
		logger:        logger,
	}
	gate.steps = []Step{
		{Name: StepCredential, run: gate.checkCredential},
		{Name: StepApproval, run: gate.checkApproval},
		{Name: StepRole, run: gate.checkRole},
		{Name: StepOwnership, run: gate.checkOwnership},
	}
	return gate
}

// Steps returns the step names in evaluation order.
func (gate *Gate) Steps() []string {
	names := make([]string, len(gate.steps))
	for i, step := range gate.steps {
		names[i] = step.Name
	}
	return names
}

// Check evaluates op for the given credential and target.
//
// On success it returns the authenticated principal. On failure it returns
// an [*apperr.AppError] from the first step that rejected the request.
func (gate *Gate) Check(ctx context.Context, op Operation, credential Credential, target Target) (*Principal, error) {
	eval := &evaluation{op: op, credential: credential, target: target}

	for _, step := range gate.steps {
		if err := step.run(ctx, eval); err != nil {
			gate.record(op.Name, step.Name, "deny")
			gate.logger.DebugContext(ctx, "access_denied",
				slog.String("operation", op.Name),
				slog.String("step", step.Name),
				slog.Any("error", err),
			)
			return nil, err
		}
	}

	gate.record(op.Name, "all", "allow")
	return eval.principal, nil
}

func (gate *Gate) record(operation, step, outcome string) {
	if gate.recorder != nil {
		gate.recorder.RecordDecision(operation, step, outcome)
	}
}

// ── Steps ────────────────────────────────────────────────────────────────

func (gate *Gate) checkCredential(ctx context.Context, eval *evaluation) error {
	if eval.credential.Scheme == "" {
		return apperr.Unauthorized("Authentication required")
	}
	if !strings.EqualFold(eval.credential.Scheme, TokenScheme) || eval.credential.Value == "" {
		return apperr.Unauthorized("Invalid authorization format")
	}

	principal, err := gate.authenticator.Authenticate(ctx, eval.credential.Value)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.Unauthorized("Invalid or expired token").WithCause(err)
	}
	if principal == nil {
		return apperr.Unauthorized("Invalid or expired token")
	}

	eval.principal = principal
	return nil
}

func (gate *Gate) checkApproval(_ context.Context, eval *evaluation) error {
	if eval.principal.Approved || eval.op.AllowUnapproved {
		return nil
	}
	return apperr.NotApproved()
}

func (gate *Gate) checkRole(ctx context.Context, eval *evaluation) error {
	required, err := gate.requiredRoles(ctx, eval)
	if err != nil {
		return err
	}
	if !Authorize(eval.principal.Roles, required) {
		return apperr.Forbidden()
	}
	return nil
}

func (gate *Gate) requiredRoles(ctx context.Context, eval *evaluation) (RoleSet, error) {
	if eval.op.Resolve != nil {
		required, err := eval.op.Resolve(ctx, eval.target)
		if err == nil {
			return required, nil
		}
		if errors.Is(err, ErrUnknownDiscriminator) {
			gate.logger.ErrorContext(ctx, "integrity_unknown_discriminator",
				slog.String("operation", eval.op.Name),
				slog.Any("error", err),
			)
			return nil, apperr.Internal(err)
		}
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	required, ok := Policy(eval.op.Category)
	if !ok {
		// An operation without a policy is a wiring bug; deny it.
		gate.logger.ErrorContext(ctx, "access_policy_missing",
			slog.String("operation", eval.op.Name),
			slog.String("category", string(eval.op.Category)),
		)
		return nil, apperr.Forbidden()
	}
	return required, nil
}

func (gate *Gate) checkOwnership(ctx context.Context, eval *evaluation) error {
	if eval.op.Owner == nil {
		return nil
	}
	return eval.op.Owner(ctx, eval.principal, eval.target)
}
