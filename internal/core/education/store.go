// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"context"

	"github.com/kanoon/kanoon/pkg/pagination"
)

type CourseRepository interface {
	ListCourses(ctx context.Context, params pagination.Params) ([]*Course, int, error)
	GetCourse(ctx context.Context, id int64) (*Course, error)
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id int64) error

	ListLectures(ctx context.Context, courseID int64, params pagination.Params) ([]*Lecture, int, error)
	GetLecture(ctx context.Context, id int64) (*Lecture, error)
	CreateLecture(ctx context.Context, lecture *Lecture) error
	UpdateLecture(ctx context.Context, lecture *Lecture) error
	DeleteLecture(ctx context.Context, id int64) error
}

type ClassRepository interface {
	ListEnrolments(ctx context.Context, lectureID int64, params pagination.Params) ([]*Enrolment, int, error)
	IsEnrolled(ctx context.Context, lectureID, studentID int64) (bool, error)
	Enrol(ctx context.Context, enrolment *Enrolment) error
	Unenrol(ctx context.Context, lectureID, studentID int64) error
	UnenrolAll(ctx context.Context, lectureID int64) error

	ListExams(ctx context.Context, lectureID int64, params pagination.Params) ([]*Exam, int, error)
	GetExam(ctx context.Context, id int64) (*Exam, error)
	CreateExam(ctx context.Context, exam *Exam) error
	UpdateExam(ctx context.Context, exam *Exam) error
	DeleteExam(ctx context.Context, id int64) error
	DeleteExams(ctx context.Context, lectureID int64) error

	ListResults(ctx context.Context, examID int64, params pagination.Params) ([]*Result, int, error)
	GetResult(ctx context.Context, examID, studentID int64) (*Result, error)
	PutResult(ctx context.Context, result *Result) error
	DeleteResult(ctx context.Context, examID, studentID int64) error
	// DeleteResults removes results of every exam of a lecture, limited to
	// one student when studentID is non-zero.
	DeleteResults(ctx context.Context, lectureID, studentID int64) error
	DeleteExamResults(ctx context.Context, examID int64) error
}

type AttendanceRepository interface {
	ListLectureSessions(ctx context.Context, lectureID int64, params pagination.Params) ([]*LectureSession, int, error)
	GetLectureSession(ctx context.Context, id int64) (*LectureSession, error)
	// CreateLectureSession assigns the next number within the lecture.
	CreateLectureSession(ctx context.Context, session *LectureSession) error
	UpdateLectureSession(ctx context.Context, session *LectureSession) error
	DeleteLectureSession(ctx context.Context, id int64) error
	DeleteLectureSessions(ctx context.Context, lectureID int64) error

	ListAttendance(ctx context.Context, sessionID int64, params pagination.Params) ([]*Attendance, int, error)
	GetAttendance(ctx context.Context, sessionID, studentID int64) (*Attendance, error)
	CreateAttendance(ctx context.Context, attendance *Attendance) error
	UpdateAttendance(ctx context.Context, attendance *Attendance) error
	DeleteAttendance(ctx context.Context, sessionID, studentID int64) error
	// DeleteAttendances clears sheet rows of a lecture. A non-zero sessionID
	// or studentID narrows the delete.
	DeleteAttendances(ctx context.Context, lectureID, sessionID, studentID int64) error
}
