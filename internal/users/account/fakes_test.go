// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sort"
	"time"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/events"
	"github.com/kanoon/kanoon/internal/users/account"
	"github.com/kanoon/kanoon/pkg/pagination"
)

var errInjected = errors.New("injected storage failure")

// memoryState is the whole fake database, copied wholesale on snapshot.
type memoryState struct {
	users    map[int64]account.User
	students map[int64]account.StudentInfo
	officers map[int64]bool
	roles    map[int64][]access.Role
	details  map[int64]account.Details
	dials    map[int64]account.Dial
	grades   map[int64]account.Grade
	messages map[int64]account.Message
	friends  map[[2]int64]account.Friend
	nextID   int64
}

func (state memoryState) clone() memoryState {
	out := state
	out.users = maps.Clone(state.users)
	out.students = maps.Clone(state.students)
	out.officers = maps.Clone(state.officers)
	out.roles = make(map[int64][]access.Role, len(state.roles))
	for id, roles := range state.roles {
		out.roles[id] = append([]access.Role(nil), roles...)
	}
	out.details = maps.Clone(state.details)
	out.dials = maps.Clone(state.dials)
	out.grades = maps.Clone(state.grades)
	out.messages = maps.Clone(state.messages)
	out.friends = maps.Clone(state.friends)
	return out
}

// memoryStore implements every account repository plus a snapshotting TxRunner.
type memoryStore struct {
	state memoryState
	// failOn names a repository method that returns errInjected.
	failOn string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{state: memoryState{
		users:    map[int64]account.User{},
		students: map[int64]account.StudentInfo{},
		officers: map[int64]bool{},
		roles:    map[int64][]access.Role{},
		details:  map[int64]account.Details{},
		dials:    map[int64]account.Dial{},
		grades:   map[int64]account.Grade{},
		messages: map[int64]account.Message{},
		friends:  map[[2]int64]account.Friend{},
	}}
}

func (store *memoryStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := store.state.clone()
	if err := fn(ctx); err != nil {
		store.state = snapshot
		return err
	}
	return nil
}

func (store *memoryStore) id() int64 {
	store.state.nextID++
	return store.state.nextID
}

func (store *memoryStore) fail(method string) error {
	if store.failOn == method {
		return errInjected
	}
	return nil
}

func page[T any](items []T, params pagination.Params) []T {
	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	return items[start:end]
}

// users is the UserRepository view.
type users struct{ *memoryStore }

func (r users) Create(_ context.Context, user *account.User) error {
	for _, existing := range r.state.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Duplicate value violates account_username_key")
		}
	}
	user.ID = r.id()
	user.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := *user
	stored.Student = nil
	r.state.users[user.ID] = stored
	return nil
}

func (r users) FindByID(_ context.Context, id int64) (*account.User, error) {
	user, ok := r.state.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if info, ok := r.state.students[id]; ok {
		user.Student = &info
	}
	return &user, nil
}

func (r users) FindByLogin(ctx context.Context, login string) (*account.User, error) {
	for id, user := range r.state.users {
		if user.Username == login || user.Email == login {
			return r.FindByID(ctx, id)
		}
	}
	return nil, apperr.NotFound("User")
}

func (r users) List(ctx context.Context, kind account.Kind, params pagination.Params) ([]*account.User, int, error) {
	ids := make([]int64, 0, len(r.state.users))
	for id, user := range r.state.users {
		if kind == "" || user.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*account.User, 0)
	for _, id := range page(ids, params) {
		user, _ := r.FindByID(ctx, id)
		out = append(out, user)
	}
	return out, len(ids), nil
}

func (r users) UpdateCredentials(_ context.Context, user *account.User) error {
	stored, ok := r.state.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Email, stored.PasswordHash = user.Email, user.PasswordHash
	r.state.users[user.ID] = stored
	return nil
}

func (r users) SetApproved(_ context.Context, id int64, approved bool) error {
	stored, ok := r.state.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Approved = approved
	r.state.users[id] = stored
	return nil
}

func (r users) SetKind(_ context.Context, id int64, kind account.Kind) error {
	stored, ok := r.state.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Kind = kind
	r.state.users[id] = stored
	return nil
}

func (r users) Delete(_ context.Context, id int64) error {
	if err := r.fail("Delete"); err != nil {
		return err
	}
	delete(r.state.users, id)
	return nil
}

func (r users) CreateStudent(_ context.Context, userID int64, info account.StudentInfo) error {
	r.state.students[userID] = info
	return nil
}

func (r users) UpdateStudent(_ context.Context, userID int64, info account.StudentInfo) error {
	r.state.students[userID] = info
	return nil
}

func (r users) CreateOfficer(_ context.Context, userID int64) error {
	r.state.officers[userID] = true
	return nil
}

func (r users) DeleteVariants(_ context.Context, userID int64) error {
	delete(r.state.students, userID)
	delete(r.state.officers, userID)
	return nil
}

// roles is the RoleRepository view.
type roles struct{ *memoryStore }

func (r roles) Roles(_ context.Context, userID int64) ([]access.Role, error) {
	return append([]access.Role{}, r.state.roles[userID]...), nil
}

func (r roles) Grant(_ context.Context, userID int64, role access.Role) error {
	for _, held := range r.state.roles[userID] {
		if held == role {
			return apperr.Conflict("Duplicate value violates role_user_id_role_name_key")
		}
	}
	r.state.roles[userID] = append(r.state.roles[userID], role)
	return nil
}

func (r roles) Revoke(_ context.Context, userID int64, role access.Role) error {
	held := r.state.roles[userID]
	for i, existing := range held {
		if existing == role {
			r.state.roles[userID] = append(held[:i:i], held[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Role assignment")
}

func (r roles) RevokeAll(_ context.Context, userID int64) error {
	if err := r.fail("RevokeAll"); err != nil {
		return err
	}
	delete(r.state.roles, userID)
	return nil
}

func (r roles) Holders(_ context.Context, role access.Role) ([]int64, error) {
	ids := make([]int64, 0)
	for id, held := range r.state.roles {
		for _, existing := range held {
			if existing == role {
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// profiles is the ProfileRepository view.
type profiles struct{ *memoryStore }

func (r profiles) GetDetails(_ context.Context, userID int64) (*account.Details, error) {
	details, ok := r.state.details[userID]
	if !ok {
		return nil, apperr.NotFound("Details")
	}
	return &details, nil
}

func (r profiles) UpsertDetails(_ context.Context, details *account.Details) error {
	r.state.details[details.UserID] = *details
	return nil
}

func (r profiles) DeleteDetails(_ context.Context, userID int64) error {
	delete(r.state.details, userID)
	return nil
}

func (r profiles) ListDials(_ context.Context, userID int64, params pagination.Params) ([]*account.Dial, int, error) {
	out := make([]*account.Dial, 0)
	for _, dial := range r.state.dials {
		if dial.UserID == userID {
			out = append(out, &dial)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, params), len(out), nil
}

func (r profiles) GetDial(_ context.Context, id int64) (*account.Dial, error) {
	dial, ok := r.state.dials[id]
	if !ok {
		return nil, apperr.NotFound("Dial")
	}
	return &dial, nil
}

func (r profiles) CreateDial(_ context.Context, dial *account.Dial) error {
	for _, existing := range r.state.dials {
		if existing.UserID == dial.UserID && existing.Number == dial.Number {
			return apperr.Conflict("Duplicate value violates dial_user_id_number_key")
		}
	}
	dial.ID = r.id()
	r.state.dials[dial.ID] = *dial
	return nil
}

func (r profiles) UpdateDial(_ context.Context, dial *account.Dial) error {
	r.state.dials[dial.ID] = *dial
	return nil
}

func (r profiles) DeleteDial(_ context.Context, id int64) error {
	delete(r.state.dials, id)
	return nil
}

func (r profiles) DeleteDials(_ context.Context, userID int64) error {
	for id, dial := range r.state.dials {
		if dial.UserID == userID {
			delete(r.state.dials, id)
		}
	}
	return nil
}

func (r profiles) ListGrades(_ context.Context, userID int64, params pagination.Params) ([]*account.Grade, int, error) {
	out := make([]*account.Grade, 0)
	for _, grade := range r.state.grades {
		if grade.UserID == userID {
			out = append(out, &grade)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, params), len(out), nil
}

func (r profiles) GetGrade(_ context.Context, id int64) (*account.Grade, error) {
	grade, ok := r.state.grades[id]
	if !ok {
		return nil, apperr.NotFound("Grade")
	}
	return &grade, nil
}

func (r profiles) CreateGrade(_ context.Context, grade *account.Grade) error {
	for _, existing := range r.state.grades {
		if existing.UserID == grade.UserID && existing.Major == grade.Major && existing.Degree == grade.Degree {
			return apperr.Conflict("Duplicate value violates grade_user_id_major_degree_key")
		}
	}
	grade.ID = r.id()
	r.state.grades[grade.ID] = *grade
	return nil
}

func (r profiles) UpdateGrade(_ context.Context, grade *account.Grade) error {
	r.state.grades[grade.ID] = *grade
	return nil
}

func (r profiles) DeleteGrade(_ context.Context, id int64) error {
	delete(r.state.grades, id)
	return nil
}

func (r profiles) DeleteGrades(_ context.Context, userID int64) error {
	for id, grade := range r.state.grades {
		if grade.UserID == userID {
			delete(r.state.grades, id)
		}
	}
	return nil
}

// messages is the MessageRepository view.
type messages struct{ *memoryStore }

func (r messages) List(_ context.Context, userID int64, filter account.MessageFilter, params pagination.Params) ([]*account.Message, int, error) {
	out := make([]*account.Message, 0)
	for _, message := range r.state.messages {
		if message.UserID != userID {
			continue
		}
		if (filter == account.FilterRead && !message.Read) || (filter == account.FilterUnread && message.Read) {
			continue
		}
		out = append(out, &message)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, params), len(out), nil
}

func (r messages) Get(_ context.Context, id int64) (*account.Message, error) {
	message, ok := r.state.messages[id]
	if !ok {
		return nil, apperr.NotFound("Message")
	}
	return &message, nil
}

func (r messages) Create(_ context.Context, message *account.Message) error {
	message.ID = r.id()
	r.state.messages[message.ID] = *message
	return nil
}

func (r messages) Update(_ context.Context, message *account.Message) error {
	r.state.messages[message.ID] = *message
	return nil
}

func (r messages) Delete(_ context.Context, id int64) error {
	delete(r.state.messages, id)
	return nil
}

func (r messages) DeleteAll(_ context.Context, userID int64) error {
	for id, message := range r.state.messages {
		if message.UserID == userID {
			delete(r.state.messages, id)
		}
	}
	return nil
}

func (r messages) MarkRead(_ context.Context, ids []int64) error {
	for _, id := range ids {
		message := r.state.messages[id]
		message.Read = true
		r.state.messages[id] = message
	}
	return nil
}

// friends is the FriendRepository view. Pairs are keyed smaller id first.
type friends struct{ *memoryStore }

func pairKey(a, b int64) [2]int64 {
	return [2]int64{min(a, b), max(a, b)}
}

// asSeenBy turns a stored pair around so that UserID is userID.
func asSeenBy(friend account.Friend, userID int64) *account.Friend {
	if friend.UserID != userID {
		friend.UserID, friend.FriendID = friend.FriendID, friend.UserID
	}
	return &friend
}

func (r friends) List(_ context.Context, userID int64, params pagination.Params) ([]*account.Friend, int, error) {
	out := make([]*account.Friend, 0)
	for key, friend := range r.state.friends {
		if key[0] == userID || key[1] == userID {
			out = append(out, asSeenBy(friend, userID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FriendID < out[j].FriendID })
	return page(out, params), len(out), nil
}

func (r friends) Get(_ context.Context, userID, friendID int64) (*account.Friend, error) {
	friend, ok := r.state.friends[pairKey(userID, friendID)]
	if !ok {
		return nil, apperr.NotFound("Friend")
	}
	return asSeenBy(friend, userID), nil
}

func (r friends) Create(_ context.Context, friend *account.Friend) error {
	key := pairKey(friend.UserID, friend.FriendID)
	if _, exists := r.state.friends[key]; exists {
		return apperr.Conflict("Duplicate value violates uq_friend_pair")
	}
	friend.CreatedAt = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	r.state.friends[key] = *friend
	return nil
}

func (r friends) Delete(_ context.Context, userID, friendID int64) error {
	key := pairKey(userID, friendID)
	if _, ok := r.state.friends[key]; !ok {
		return apperr.NotFound("Friend")
	}
	delete(r.state.friends, key)
	return nil
}

func (r friends) DeleteAll(_ context.Context, userID int64) error {
	if err := r.fail("DeleteAll"); err != nil {
		return err
	}
	for key := range r.state.friends {
		if key[0] == userID || key[1] == userID {
			delete(r.state.friends, key)
		}
	}
	return nil
}

// recordingPublisher collects published event types.
type recordingPublisher struct {
	types []string
}

func (publisher *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	publisher.types = append(publisher.types, event.Type)
	return nil
}

func newTestService() (*account.Service, *memoryStore, *recordingPublisher) {
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	service := account.NewService(account.Repositories{
		Users:    users{store},
		Roles:    roles{store},
		Profiles: profiles{store},
		Messages: messages{store},
		Friends:  friends{store},
	}, store, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, store, publisher
}
