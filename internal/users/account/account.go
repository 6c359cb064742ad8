// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account is the identity store: members, their kind-specific rows,
their role assignments and their personal records.

# Architecture

  - Entities: User (student or officer), Details, Dial, Grade, Message, Friend.
  - Storage: one PostgreSQL repository per concern, all reading the request
    transaction through [postgres.DB].
  - Events: registration, acceptance, deletion and role changes are published
    after the request transaction commits.
*/
package account

import (
	"context"
	"strings"
	"time"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// # Domain Entities

// Kind is the account variant. It is fixed at signup and only admins change it.
type Kind string

const (
	KindStudent Kind = "student"
	KindOfficer Kind = "officer"
)

// Valid reports whether k is a known variant.
func (k Kind) Valid() bool {
	return access.UserFamily.Validate(string(k)) == nil
}

// NormalizeEmail is the stored form of an email: trimmed and lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is a member account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Kind         Kind      `json:"type"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"creation_date"`

	// Student is set for student accounts only.
	Student *StudentInfo `json:"student,omitempty"`
}

// StudentInfo is the student variant row.
type StudentInfo struct {
	Grade int    `json:"grade"`
	Group string `json:"group"`
}

// Details is the optional personal profile of a member.
type Details struct {
	UserID              int64   `json:"user_id"`
	Firstname           string  `json:"firstname"`
	Lastname            string  `json:"lastname"`
	Instagram           *string `json:"instagram"`
	BirthDate           *string `json:"birth_date"`
	NatID               *string `json:"nat_id"`
	Fathername          *string `json:"fathername"`
	UserPic             *string `json:"user_pic"`
	NatPic              *string `json:"nat_pic"`
	BirthCertificatePic *string `json:"birth_certificate_pic"`
}

// DialType distinguishes landlines from mobiles.
type DialType string

const (
	DialTelephone DialType = "telephone"
	DialMobile    DialType = "mobile"
)

// Dial is a phone number owned by a member.
type Dial struct {
	ID     int64    `json:"id"`
	UserID int64    `json:"user_id"`
	Number string   `json:"number"`
	Type   DialType `json:"type"`
}

// Degree levels accepted on a grade record.
const (
	DegreeDiploma   = "diploma"
	DegreeBachelor  = "bachelor"
	DegreeMaster    = "master"
	DegreeDoctorate = "doctorate"
)

// Grade is an academic degree held by a member.
type Grade struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	Major   string  `json:"major"`
	College string  `json:"college"`
	Degree  string  `json:"degree"`
	Pic     *string `json:"pic"`
}

// Message is an inbox entry addressed to one member.
type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"creation_date"`
}

// Friend links two members. A pair is stored once, whichever side added it;
// reads present it from the side of UserID.
type Friend struct {
	UserID    int64     `json:"user_id"`
	FriendID  int64     `json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageFilter narrows an inbox listing. The zero value lists everything.
type MessageFilter string

const (
	FilterAll    MessageFilter = ""
	FilterRead   MessageFilter = "read"
	FilterUnread MessageFilter = "unread"
)

// # Repository Contracts

// UserRepository persists accounts and their variant rows.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	// FindByLogin matches either the username or the email. Emails are stored
	// through [NormalizeEmail], so an email login must be normalized first.
	FindByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context, kind Kind, params pagination.Params) ([]*User, int, error)
	UpdateCredentials(ctx context.Context, user *User) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error

	CreateStudent(ctx context.Context, userID int64, info StudentInfo) error
	UpdateStudent(ctx context.Context, userID int64, info StudentInfo) error
	CreateOfficer(ctx context.Context, userID int64) error
	// DeleteVariants removes both variant rows; either may be absent.
	DeleteVariants(ctx context.Context, userID int64) error
	SetKind(ctx context.Context, id int64, kind Kind) error
}

// RoleRepository persists role assignments.
type RoleRepository interface {
	Roles(ctx context.Context, userID int64) ([]access.Role, error)
	// Grant fails with a conflict when the pair already exists.
	Grant(ctx context.Context, userID int64, role access.Role) error
	// Revoke fails with not found when the pair does not exist.
	Revoke(ctx context.Context, userID int64, role access.Role) error
	RevokeAll(ctx context.Context, userID int64) error
	// Holders lists the members holding role.
	Holders(ctx context.Context, role access.Role) ([]int64, error)
}

// ProfileRepository persists details, dials and grades.
type ProfileRepository interface {
	GetDetails(ctx context.Context, userID int64) (*Details, error)
	UpsertDetails(ctx context.Context, details *Details) error
	DeleteDetails(ctx context.Context, userID int64) error

	ListDials(ctx context.Context, userID int64, params pagination.Params) ([]*Dial, int, error)
	GetDial(ctx context.Context, id int64) (*Dial, error)
	CreateDial(ctx context.Context, dial *Dial) error
	UpdateDial(ctx context.Context, dial *Dial) error
	DeleteDial(ctx context.Context, id int64) error
	DeleteDials(ctx context.Context, userID int64) error

	ListGrades(ctx context.Context, userID int64, params pagination.Params) ([]*Grade, int, error)
	GetGrade(ctx context.Context, id int64) (*Grade, error)
	CreateGrade(ctx context.Context, grade *Grade) error
	UpdateGrade(ctx context.Context, grade *Grade) error
	DeleteGrade(ctx context.Context, id int64) error
	DeleteGrades(ctx context.Context, userID int64) error
}

// MessageRepository persists inbox messages.
type MessageRepository interface {
	List(ctx context.Context, userID int64, filter MessageFilter, params pagination.Params) ([]*Message, int, error)
	Get(ctx context.Context, id int64) (*Message, error)
	Create(ctx context.Context, message *Message) error
	Update(ctx context.Context, message *Message) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context, userID int64) error
	MarkRead(ctx context.Context, ids []int64) error
}

// FriendRepository persists friendships. Every method sees a pair from
// either side.
type FriendRepository interface {
	List(ctx context.Context, userID int64, params pagination.Params) ([]*Friend, int, error)
	Get(ctx context.Context, userID, friendID int64) (*Friend, error)
	// Create fails with a conflict when the pair exists in either direction.
	Create(ctx context.Context, friend *Friend) error
	Delete(ctx context.Context, userID, friendID int64) error
	DeleteAll(ctx context.Context, userID int64) error
}
