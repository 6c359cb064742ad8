// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"strings"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

// # Details

// GetDetails returns the caller's details. A member who never saved any gets
// an empty record rather than a 404.
func (service *Service) GetDetails(ctx context.Context, userID int64) (*Details, error) {
	details, err := service.profiles.GetDetails(ctx, userID)
	if isNotFound(err) {
		return &Details{UserID: userID}, nil
	}
	return details, err
}

// PutDetails replaces the caller's details.
func (service *Service) PutDetails(ctx context.Context, userID int64, details Details) (*Details, error) {
	v := &validate.Validator{}
	v.Required("firstname", details.Firstname).
		Required("lastname", details.Lastname)
	if details.NatID != nil {
		v.Digits("nat_id", *details.NatID, 10)
	}
	if details.BirthDate != nil {
		v.Date("birth_date", *details.BirthDate)
	}
	if details.Instagram != nil {
		v.Instagram("instagram", *details.Instagram)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	details.UserID = userID
	if err := service.profiles.UpsertDetails(ctx, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// # Dials

// DialInput is the create and patch payload of a dial.
type DialInput struct {
	Number *string   `json:"number"`
	Type   *DialType `json:"type"`
}

func validateDial(dial *Dial) error {
	return (&validate.Validator{}).
		Digits("number", dial.Number, 11).
		OneOf("type", string(dial.Type), string(DialTelephone), string(DialMobile)).
		Err()
}

func (service *Service) ListDials(ctx context.Context, userID int64, params pagination.Params) ([]*Dial, int, error) {
	return service.profiles.ListDials(ctx, userID, params)
}

// GetDial loads one dial. Ownership is enforced by the gate.
func (service *Service) GetDial(ctx context.Context, id int64) (*Dial, error) {
	return service.profiles.GetDial(ctx, id)
}

// DialOwner returns the member a dial belongs to.
func (service *Service) DialOwner(ctx context.Context, id int64) (int64, error) {
	dial, err := service.profiles.GetDial(ctx, id)
	if err != nil {
		return 0, err
	}
	return dial.UserID, nil
}

// CreateDial adds a number to the caller. The same number twice is a conflict.
func (service *Service) CreateDial(ctx context.Context, userID int64, input DialInput) (*Dial, error) {
	dial := &Dial{
		UserID: userID,
		Number: pointer.Val(input.Number),
		Type:   pointer.Val(input.Type),
	}
	if err := validateDial(dial); err != nil {
		return nil, err
	}
	if err := service.profiles.CreateDial(ctx, dial); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("A dial with the same number already exists").WithCause(err)
		}
		return nil, err
	}
	return dial, nil
}

func (service *Service) UpdateDial(ctx context.Context, id int64, input DialInput) (*Dial, error) {
	dial, err := service.profiles.GetDial(ctx, id)
	if err != nil {
		return nil, err
	}
	dial.Number = pointer.Fallback(input.Number, dial.Number)
	dial.Type = pointer.Fallback(input.Type, dial.Type)
	if err := validateDial(dial); err != nil {
		return nil, err
	}
	if err := service.profiles.UpdateDial(ctx, dial); err != nil {
		return nil, err
	}
	return dial, nil
}

func (service *Service) DeleteDial(ctx context.Context, id int64) error {
	return service.profiles.DeleteDial(ctx, id)
}

// # Grades

// GradeInput is the create and patch payload of a grade.
type GradeInput struct {
	Major   *string `json:"major"`
	College *string `json:"college"`
	Degree  *string `json:"degree"`
	Pic     *string `json:"pic"`
}

func validateGrade(grade *Grade) error {
	return (&validate.Validator{}).
		Required("major", grade.Major).
		Required("college", grade.College).
		OneOf("degree", grade.Degree, DegreeDiploma, DegreeBachelor, DegreeMaster, DegreeDoctorate).
		Err()
}

func (service *Service) ListGrades(ctx context.Context, userID int64, params pagination.Params) ([]*Grade, int, error) {
	return service.profiles.ListGrades(ctx, userID, params)
}

func (service *Service) GetGrade(ctx context.Context, id int64) (*Grade, error) {
	return service.profiles.GetGrade(ctx, id)
}

// GradeOwner returns the member a grade belongs to.
func (service *Service) GradeOwner(ctx context.Context, id int64) (int64, error) {
	grade, err := service.profiles.GetGrade(ctx, id)
	if err != nil {
		return 0, err
	}
	return grade.UserID, nil
}

// CreateGrade records a degree. (major, degree) is unique per member.
func (service *Service) CreateGrade(ctx context.Context, userID int64, input GradeInput) (*Grade, error) {
	grade := &Grade{
		UserID:  userID,
		Major:   strings.TrimSpace(pointer.Val(input.Major)),
		College: strings.TrimSpace(pointer.Val(input.College)),
		Degree:  pointer.Val(input.Degree),
		Pic:     input.Pic,
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}
	if err := service.profiles.CreateGrade(ctx, grade); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("A grade with the same major and degree already exists").WithCause(err)
		}
		return nil, err
	}
	return grade, nil
}

func (service *Service) UpdateGrade(ctx context.Context, id int64, input GradeInput) (*Grade, error) {
	grade, err := service.profiles.GetGrade(ctx, id)
	if err != nil {
		return nil, err
	}
	grade.Major = pointer.Fallback(input.Major, grade.Major)
	grade.College = pointer.Fallback(input.College, grade.College)
	grade.Degree = pointer.Fallback(input.Degree, grade.Degree)
	if input.Pic != nil {
		grade.Pic = input.Pic
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}
	if err := service.profiles.UpdateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (service *Service) DeleteGrade(ctx context.Context, id int64) error {
	return service.profiles.DeleteGrade(ctx, id)
}

// # Messages

/*
Inbox lists the caller's messages and marks the returned unread ones as read.

The response shows each message as it was before this call, so a client can
still tell which messages are new.
*/
func (service *Service) Inbox(ctx context.Context, userID int64, filter MessageFilter, params pagination.Params) ([]*Message, int, error) {
	switch filter {
	case FilterAll, FilterRead, FilterUnread:
	default:
		return nil, 0, validate.RequiredError("filter", "filter choices: read, unread")
	}

	messages, total, err := service.messages.List(ctx, userID, filter, params)
	if err != nil {
		return nil, 0, err
	}

	unread := make([]int64, 0, len(messages))
	for _, message := range messages {
		if !message.Read {
			unread = append(unread, message.ID)
		}
	}
	if err := service.messages.MarkRead(ctx, unread); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Messages lists a member's messages without touching the read flag.
func (service *Service) Messages(ctx context.Context, userID int64, params pagination.Params) ([]*Message, int, error) {
	return service.messages.List(ctx, userID, FilterAll, params)
}

// MessageInput is the admin payload for composing or editing a message.
type MessageInput struct {
	Subject *string `json:"subject"`
	Text    *string `json:"text"`
}

func validateMessage(message *Message) error {
	return (&validate.Validator{}).
		Required("subject", message.Subject).
		Required("text", message.Text).
		Err()
}

// SendMessage drops a message into a member's inbox.
func (service *Service) SendMessage(ctx context.Context, userID int64, input MessageInput) (*Message, error) {
	message := &Message{
		UserID:  userID,
		Subject: pointer.Val(input.Subject),
		Text:    pointer.Val(input.Text),
	}
	if err := validateMessage(message); err != nil {
		return nil, err
	}
	if _, err := service.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := service.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// UpdateMessage edits a message of the addressed member.
func (service *Service) UpdateMessage(ctx context.Context, userID, messageID int64, input MessageInput) (*Message, error) {
	message, err := service.memberMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	message.Subject = pointer.Fallback(input.Subject, message.Subject)
	message.Text = pointer.Fallback(input.Text, message.Text)
	if err := validateMessage(message); err != nil {
		return nil, err
	}
	if err := service.messages.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage removes a message of the addressed member.
func (service *Service) DeleteMessage(ctx context.Context, userID, messageID int64) error {
	if _, err := service.memberMessage(ctx, userID, messageID); err != nil {
		return err
	}
	return service.messages.Delete(ctx, messageID)
}

// memberMessage loads a message and checks it is addressed to userID, so a
// path naming another member's message is a 404.
func (service *Service) memberMessage(ctx context.Context, userID, messageID int64) (*Message, error) {
	message, err := service.messages.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.UserID != userID {
		return nil, apperr.NotFound("Message")
	}
	return message, nil
}
