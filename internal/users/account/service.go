// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/events"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/sec"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

// Service implements identity management: signup, approval, kind changes,
// cascading deletion, role assignment and the self-service records.
type Service struct {
	users     UserRepository
	roles     RoleRepository
	profiles  ProfileRepository
	messages  MessageRepository
	friends   FriendRepository
	tx        postgres.TxRunner
	publisher events.Publisher
	logger    *slog.Logger
}

// Repositories groups the storage dependencies of [Service].
type Repositories struct {
	Users    UserRepository
	Roles    RoleRepository
	Profiles ProfileRepository
	Messages MessageRepository
	Friends  FriendRepository
}

// NewService constructs a new account [Service].
func NewService(repos Repositories, tx postgres.TxRunner, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		users:     repos.Users,
		roles:     repos.Roles,
		profiles:  repos.Profiles,
		messages:  repos.Messages,
		friends:   repos.Friends,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

// # Identity

// SignupInput is the public registration payload.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Kind     Kind   `json:"type"`
	Grade    *int   `json:"grade"`
	Group    string `json:"group"`
}

/*
Signup registers an unapproved member.

Description: Creates the account and its variant row in one transaction.
An officer signup leaves a message in every admin's inbox asking them to
assign roles.

Returns:
  - *User: The created account
  - error: ValidationError, Conflict on duplicate username or email
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = NormalizeEmail(input.Email)

	v := &validate.Validator{}
	v.Username("username", input.Username).
		Required("email", input.Email).
		Required("password", input.Password).
		OneOf("type", string(input.Kind), string(KindStudent), string(KindOfficer))
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if input.Kind == KindStudent {
		v.Custom("grade", input.Grade == nil, "This field is required").
			Required("group", input.Group)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Kind:         input.Kind,
	}

	err = service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.users.Create(ctx, user); err != nil {
			return err
		}
		if user.Kind == KindStudent {
			user.Student = &StudentInfo{Grade: *input.Grade, Group: input.Group}
			return service.users.CreateStudent(ctx, user.ID, *user.Student)
		}
		if err := service.users.CreateOfficer(ctx, user.ID); err != nil {
			return err
		}
		return service.notifyAdmins(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("type", string(user.Kind)),
	)
	service.publish(ctx, events.TypeUserRegistered, map[string]any{
		"user_id": user.ID, "username": user.Username, "type": user.Kind,
	})
	return user, nil
}

func (service *Service) notifyAdmins(ctx context.Context, user *User) error {
	admins, err := service.roles.Holders(ctx, access.RoleAdmin)
	if err != nil {
		return err
	}
	for _, adminID := range admins {
		message := &Message{
			UserID:  adminID,
			Subject: "new user created",
			Text:    fmt.Sprintf("set roles for user: %d", user.ID),
		}
		if err := service.messages.Create(ctx, message); err != nil {
			return err
		}
	}
	return nil
}

// GetUser loads one account.
func (service *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return service.users.FindByID(ctx, id)
}

// ListUsers pages through accounts. kind may be empty.
func (service *Service) ListUsers(ctx context.Context, kind Kind, params pagination.Params) ([]*User, int, error) {
	if kind != "" && !kind.Valid() {
		return nil, 0, validate.RequiredError("type", "Must be one of: officer, student")
	}
	return service.users.List(ctx, kind, params)
}

// UpdateSelfInput carries the fields a member may change on their own account.
type UpdateSelfInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Grade    *int    `json:"grade"`
	Group    *string `json:"group"`
}

// UpdateSelf applies a partial update to the caller's account.
// Grade and group only apply to students.
func (service *Service) UpdateSelf(ctx context.Context, id int64, input UpdateSelfInput) (*User, error) {
	v := &validate.Validator{}
	if input.Email != nil {
		input.Email = pointer.To(NormalizeEmail(*input.Email))
		v.Email("email", *input.Email)
	}
	if input.Password != nil {
		v.Required("password", *input.Password)
	}
	if input.Group != nil {
		v.Required("group", *input.Group)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = service.tx.InTx(ctx, func(ctx context.Context) error {
		if input.Email != nil || input.Password != nil {
			user.Email = pointer.Fallback(input.Email, user.Email)
			if input.Password != nil {
				hash, err := sec.HashPassword(*input.Password)
				if err != nil {
					return apperr.Internal(err)
				}
				user.PasswordHash = hash
			}
			if err := service.users.UpdateCredentials(ctx, user); err != nil {
				return err
			}
		}

		if user.Kind == KindStudent && user.Student != nil && (input.Grade != nil || input.Group != nil) {
			user.Student.Grade = pointer.Fallback(input.Grade, user.Student.Grade)
			user.Student.Group = pointer.Fallback(input.Group, user.Student.Group)
			return service.users.UpdateStudent(ctx, user.ID, *user.Student)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeKindInput is the admin payload for migrating an account between kinds.
type ChangeKindInput struct {
	Kind  Kind    `json:"type"`
	Grade *int    `json:"grade"`
	Group *string `json:"group"`
}

/*
ChangeKind migrates an account to another variant.

Description: Deletes the old variant rows and creates the new one in a single
transaction. A new student row defaults to grade 0 and group "0" when the
payload omits them. Changing to the current kind is a no-op.
*/
func (service *Service) ChangeKind(ctx context.Context, id int64, input ChangeKindInput) (*User, error) {
	if !input.Kind.Valid() {
		return nil, validate.RequiredError("type", "Must be one of: officer, student")
	}

	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Kind == input.Kind {
		return user, nil
	}

	err = service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.users.DeleteVariants(ctx, id); err != nil {
			return err
		}
		if err := service.users.SetKind(ctx, id, input.Kind); err != nil {
			return err
		}
		if input.Kind == KindOfficer {
			user.Student = nil
			return service.users.CreateOfficer(ctx, id)
		}
		user.Student = &StudentInfo{
			Grade: pointer.Fallback(input.Grade, 0),
			Group: pointer.Fallback(input.Group, "0"),
		}
		return service.users.CreateStudent(ctx, id, *user.Student)
	})
	if err != nil {
		return nil, err
	}

	user.Kind = input.Kind
	service.logger.InfoContext(ctx, "user_kind_changed",
		slog.Int64("user_id", id),
		slog.String("type", string(input.Kind)),
	)
	return user, nil
}

// Accept approves an account so that it passes the gate's approval step.
func (service *Service) Accept(ctx context.Context, id int64) (*User, error) {
	if err := service.users.SetApproved(ctx, id, true); err != nil {
		return nil, err
	}
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_accepted", slog.Int64("user_id", id))
	service.publish(ctx, events.TypeUserAccepted, map[string]any{"user_id": id})
	return user, nil
}

/*
Delete removes an account and everything it owns.

Description: Dials, grades, messages, friendships, role assignments, details
and the variant row are deleted before the account itself, all in one transaction.
A failure at any step leaves every row in place.
*/
func (service *Service) Delete(ctx context.Context, id int64) error {
	steps := []func(context.Context, int64) error{
		service.profiles.DeleteDials,
		service.profiles.DeleteGrades,
		service.messages.DeleteAll,
		service.friends.DeleteAll,
		service.roles.RevokeAll,
		service.profiles.DeleteDetails,
		service.users.DeleteVariants,
		service.users.Delete,
	}

	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := service.users.FindByID(ctx, id); err != nil {
			return err
		}
		for _, step := range steps {
			if err := step(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "user_deleted", slog.Int64("user_id", id))
	service.publish(ctx, events.TypeUserDeleted, map[string]any{"user_id": id})
	return nil
}

// # Roles

// Roles returns the roles assigned to a member.
func (service *Service) Roles(ctx context.Context, userID int64) ([]access.Role, error) {
	return service.roles.Roles(ctx, userID)
}

// RoleSet loads a member's roles as a set, for the access gate.
func (service *Service) RoleSet(ctx context.Context, userID int64) (access.RoleSet, error) {
	roles, err := service.roles.Roles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return access.NewRoleSet(roles...), nil
}

// GrantRole assigns a role. A duplicate assignment is a conflict.
func (service *Service) GrantRole(ctx context.Context, userID int64, roleName string) (access.Role, error) {
	role, err := access.ParseRole(roleName)
	if err != nil {
		return "", validate.RequiredError("role_name", "Must be one of: "+joinRoles(access.Roles()))
	}
	if _, err := service.users.FindByID(ctx, userID); err != nil {
		return "", err
	}
	if err := service.roles.Grant(ctx, userID, role); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return "", apperr.Conflict("A role with the same role_name already exists").WithCause(err)
		}
		return "", err
	}

	service.logger.InfoContext(ctx, "role_granted", slog.Int64("user_id", userID), slog.String("role", string(role)))
	service.publish(ctx, events.TypeRoleGranted, map[string]any{"user_id": userID, "role": role})
	return role, nil
}

// RevokeRole removes a role assignment.
func (service *Service) RevokeRole(ctx context.Context, userID int64, roleName string) error {
	role, err := access.ParseRole(roleName)
	if err != nil {
		return apperr.NotFound("Role assignment")
	}
	if err := service.roles.Revoke(ctx, userID, role); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "role_revoked", slog.Int64("user_id", userID), slog.String("role", string(role)))
	service.publish(ctx, events.TypeRoleRevoked, map[string]any{"user_id": userID, "role": role})
	return nil
}

func joinRoles(roles []access.Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, ", ")
}

// publish queues an event for delivery once the request transaction commits.
func (service *Service) publish(ctx context.Context, eventType string, payload any) {
	if service.publisher == nil {
		return
	}
	events.PublishAfterCommit(ctx, service.publisher, service.logger, events.New(eventType, payload))
}

// isNotFound reports whether err is a not found AppError.
func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == apperr.CodeNotFound
}
