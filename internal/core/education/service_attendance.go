// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"context"
	"time"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

// endTimeLayout is the wire format of LectureSession.EndTime.
const endTimeLayout = "15:04"

// # Lecture sessions

type LectureSessionInput struct {
	Datetime *time.Time `json:"datetime"`
	EndTime  *string    `json:"end_time"`
	Subject  *string    `json:"subject"`
	Location *string    `json:"location"`
}

func (input LectureSessionInput) apply(session *LectureSession) {
	session.Datetime = pointer.Fallback(input.Datetime, session.Datetime)
	session.EndTime = pointer.Fallback(input.EndTime, session.EndTime)
	if input.Subject != nil {
		session.Subject = input.Subject
	}
	if input.Location != nil {
		session.Location = input.Location
	}
}

func validateLectureSession(session *LectureSession) error {
	_, err := time.Parse(endTimeLayout, session.EndTime)
	v := (&validate.Validator{}).
		Custom("datetime", session.Datetime.IsZero(), "This field is required").
		Custom("end_time", err != nil, "Must be a time of day as HH:MM")
	if session.Subject != nil {
		v.MaxLen("subject", *session.Subject, 100)
	}
	if session.Location != nil {
		v.MaxLen("location", *session.Location, 50)
	}
	return v.Err()
}

func (service *Service) ListLectureSessions(ctx context.Context, lectureID int64, params pagination.Params) ([]*LectureSession, int, error) {
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, 0, err
	}
	return service.attendance.ListLectureSessions(ctx, lectureID, params)
}

// GetLectureSession loads a session through its lecture path. A session of
// another lecture is not found.
func (service *Service) GetLectureSession(ctx context.Context, lectureID, id int64) (*LectureSession, error) {
	session, err := service.attendance.GetLectureSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.LectureID != lectureID {
		return nil, apperr.NotFound("Lecture session")
	}
	return session, nil
}

// CreateLectureSession adds the next numbered session of a lecture.
func (service *Service) CreateLectureSession(ctx context.Context, lectureID int64, input LectureSessionInput) (*LectureSession, error) {
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, err
	}
	session := &LectureSession{LectureID: lectureID}
	input.apply(session)
	if err := validateLectureSession(session); err != nil {
		return nil, err
	}
	if err := service.attendance.CreateLectureSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (service *Service) UpdateLectureSession(ctx context.Context, lectureID, id int64, input LectureSessionInput) (*LectureSession, error) {
	session, err := service.GetLectureSession(ctx, lectureID, id)
	if err != nil {
		return nil, err
	}
	input.apply(session)
	if err := validateLectureSession(session); err != nil {
		return nil, err
	}
	if err := service.attendance.UpdateLectureSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteLectureSession removes a session with its attendance sheet. The
// numbers of the remaining sessions are left as they are.
func (service *Service) DeleteLectureSession(ctx context.Context, lectureID, id int64) error {
	if _, err := service.GetLectureSession(ctx, lectureID, id); err != nil {
		return err
	}
	return service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.attendance.DeleteAttendances(ctx, lectureID, id, 0); err != nil {
			return err
		}
		return service.attendance.DeleteLectureSession(ctx, id)
	})
}

// # Attendance

type AttendanceInput struct {
	StudentID    *int64  `json:"student_id"`
	Present      *bool   `json:"present"`
	HomeworkMark *int    `json:"homework_mark"`
	Description  *string `json:"description"`
}

func (input AttendanceInput) apply(row *Attendance) {
	row.Present = pointer.Fallback(input.Present, row.Present)
	if input.HomeworkMark != nil {
		row.HomeworkMark = input.HomeworkMark
	}
	if input.Description != nil {
		row.Description = input.Description
	}
}

func validateAttendance(row *Attendance) error {
	v := &validate.Validator{}
	if row.HomeworkMark != nil {
		v.Range("homework_mark", *row.HomeworkMark, 0, MaxScore)
	}
	return v.Err()
}

func (service *Service) ListAttendance(ctx context.Context, lectureID, sessionID int64, params pagination.Params) ([]*Attendance, int, error) {
	if _, err := service.GetLectureSession(ctx, lectureID, sessionID); err != nil {
		return nil, 0, err
	}
	return service.attendance.ListAttendance(ctx, sessionID, params)
}

func (service *Service) GetAttendance(ctx context.Context, lectureID, sessionID, studentID int64) (*Attendance, error) {
	if _, err := service.GetLectureSession(ctx, lectureID, sessionID); err != nil {
		return nil, err
	}
	return service.attendance.GetAttendance(ctx, sessionID, studentID)
}

/*
RecordAttendance adds a student to the sheet of one session.

The student must be enrolled in the lecture. A second row for the same
student is a conflict; corrections go through [Service.UpdateAttendance].
*/
func (service *Service) RecordAttendance(ctx context.Context, lectureID, sessionID int64, input AttendanceInput) (*Attendance, error) {
	if input.StudentID == nil || *input.StudentID <= 0 {
		return nil, validate.RequiredError("student_id", "This field is required")
	}
	if _, err := service.GetLectureSession(ctx, lectureID, sessionID); err != nil {
		return nil, err
	}

	row := &Attendance{SessionID: sessionID, StudentID: *input.StudentID}
	input.apply(row)
	if err := validateAttendance(row); err != nil {
		return nil, err
	}

	enrolled, err := service.classes.IsEnrolled(ctx, lectureID, row.StudentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, validate.RequiredError("student_id", "Student is not enrolled in this lecture")
	}

	if err := service.attendance.CreateAttendance(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (service *Service) UpdateAttendance(ctx context.Context, lectureID, sessionID, studentID int64, input AttendanceInput) (*Attendance, error) {
	row, err := service.GetAttendance(ctx, lectureID, sessionID, studentID)
	if err != nil {
		return nil, err
	}
	input.apply(row)
	if err := validateAttendance(row); err != nil {
		return nil, err
	}
	if err := service.attendance.UpdateAttendance(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (service *Service) DeleteAttendance(ctx context.Context, lectureID, sessionID, studentID int64) error {
	if _, err := service.GetLectureSession(ctx, lectureID, sessionID); err != nil {
		return err
	}
	return service.attendance.DeleteAttendance(ctx, sessionID, studentID)
}
