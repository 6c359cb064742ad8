// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users schema.
type PostgresUserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates a PostgreSQL [UserRepository].
func NewUserRepository(db *postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `
	a.id, a.username, a.email, a.password_hash, a.type, a.approved, a.created_at,
	s.grade, s."group"`

const userFrom = `
	FROM users.account a
	LEFT JOIN users.student s ON s.user_id = a.id`

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(row userScanner) (*User, error) {
	user := &User{}
	var (
		grade *int
		group *string
	)
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Kind, &user.Approved, &user.CreatedAt,
		&grade, &group,
	); err != nil {
		return nil, err
	}
	if grade != nil && group != nil {
		user.Student = &StudentInfo{Grade: *grade, Group: *group}
	}
	return user, nil
}

/*
Create inserts the account row. The variant row is written separately so that
the service can do both inside one transaction.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (username, email, password_hash, type, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Kind, user.Approved,
	).Scan(&user.ID, &user.CreatedAt)
	return dberr.Wrap(err, "create_user")
}

// FindByID loads an account with its student row, if any.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + userFrom + ` WHERE a.id = $1`

	user, err := scanUser(repository.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_user_by_id", "User")
	}
	return user, nil
}

// FindByLogin looks the account up by username first, then by email.
func (repository *PostgresUserRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	query := `SELECT ` + userColumns + userFrom + `
		WHERE a.username = $1 OR a.email = $1
		ORDER BY (a.username = $1) DESC
		LIMIT 1`

	user, err := scanUser(repository.db.Querier(ctx).QueryRow(ctx, query, login))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_user_by_login", "User")
	}
	return user, nil
}

// List pages through accounts, optionally restricted to one kind.
func (repository *PostgresUserRepository) List(ctx context.Context, kind Kind, params pagination.Params) ([]*User, int, error) {
	querier := repository.db.Querier(ctx)

	const countQuery = `SELECT count(*) FROM users.account WHERE ($1 = '' OR type = $1)`
	var total int
	if err := querier.QueryRow(ctx, countQuery, string(kind)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	query := `SELECT ` + userColumns + userFrom + `
		WHERE ($1 = '' OR a.type = $1)
		ORDER BY a.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := querier.Query(ctx, query, string(kind), params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0, params.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}
	return users, total, dberr.Wrap(rows.Err(), "list_users")
}

// UpdateCredentials rewrites email and password hash.
func (repository *PostgresUserRepository) UpdateCredentials(ctx context.Context, user *User) error {
	const query = `UPDATE users.account SET email = $2, password_hash = $3 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_user", "User", query, user.ID, user.Email, user.PasswordHash)
}

// SetApproved writes the approval flag.
func (repository *PostgresUserRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	const query = `UPDATE users.account SET approved = $2 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "set_user_approved", "User", query, id, approved)
}

// SetKind rewrites the discriminator. The caller swaps the variant rows.
func (repository *PostgresUserRepository) SetKind(ctx context.Context, id int64, kind Kind) error {
	const query = `UPDATE users.account SET type = $2 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "set_user_kind", "User", query, id, kind)
}

// Delete removes the account row. Dependent rows must already be gone;
// the schema has no cascading foreign keys.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users.account WHERE id = $1`
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_user", "User", query, id)
}

func (repository *PostgresUserRepository) CreateStudent(ctx context.Context, userID int64, info StudentInfo) error {
	const query = `INSERT INTO users.student (user_id, grade, "group") VALUES ($1, $2, $3)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, userID, info.Grade, info.Group)
	return dberr.Wrap(err, "create_student")
}

func (repository *PostgresUserRepository) UpdateStudent(ctx context.Context, userID int64, info StudentInfo) error {
	const query = `UPDATE users.student SET grade = $2, "group" = $3 WHERE user_id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_student", "User", query, userID, info.Grade, info.Group)
}

func (repository *PostgresUserRepository) CreateOfficer(ctx context.Context, userID int64) error {
	const query = `INSERT INTO users.officer (user_id) VALUES ($1)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, userID)
	return dberr.Wrap(err, "create_officer")
}

func (repository *PostgresUserRepository) DeleteVariants(ctx context.Context, userID int64) error {
	querier := repository.db.Querier(ctx)
	if _, err := querier.Exec(ctx, `DELETE FROM users.student WHERE user_id = $1`, userID); err != nil {
		return dberr.Wrap(err, "delete_student")
	}
	_, err := querier.Exec(ctx, `DELETE FROM users.officer WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "delete_officer")
}

// # Role Repository

// PostgresRoleRepository implements [RoleRepository].
type PostgresRoleRepository struct {
	db *postgres.DB
}

// NewRoleRepository creates a PostgreSQL [RoleRepository].
func NewRoleRepository(db *postgres.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (repository *PostgresRoleRepository) Roles(ctx context.Context, userID int64) ([]access.Role, error) {
	const query = `SELECT role_name FROM users.role WHERE user_id = $1 ORDER BY role_name`

	rows, err := repository.db.Querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	roles := make([]access.Role, 0)
	for rows.Next() {
		var role access.Role
		if err := rows.Scan(&role); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, role)
	}
	return roles, dberr.Wrap(rows.Err(), "list_roles")
}

// Grant relies on the (user_id, role_name) unique constraint for duplicates.
func (repository *PostgresRoleRepository) Grant(ctx context.Context, userID int64, role access.Role) error {
	const query = `INSERT INTO users.role (user_id, role_name) VALUES ($1, $2)`
	_, err := repository.db.Querier(ctx).Exec(ctx, query, userID, role)
	return dberr.Wrap(err, "grant_role")
}

func (repository *PostgresRoleRepository) Revoke(ctx context.Context, userID int64, role access.Role) error {
	const query = `DELETE FROM users.role WHERE user_id = $1 AND role_name = $2`
	tag, err := repository.db.Querier(ctx).Exec(ctx, query, userID, role)
	if err != nil {
		return dberr.Wrap(err, "revoke_role")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Role assignment")
	}
	return nil
}

func (repository *PostgresRoleRepository) RevokeAll(ctx context.Context, userID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM users.role WHERE user_id = $1`, userID)
	return dberr.Wrap(err, "revoke_all_roles")
}

func (repository *PostgresRoleRepository) Holders(ctx context.Context, role access.Role) ([]int64, error) {
	const query = `SELECT user_id FROM users.role WHERE role_name = $1 ORDER BY user_id`

	rows, err := repository.db.Querier(ctx).Query(ctx, query, role)
	if err != nil {
		return nil, dberr.Wrap(err, "list_role_holders")
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_role_holder")
		}
		ids = append(ids, id)
	}
	return ids, dberr.Wrap(rows.Err(), "list_role_holders")
}
