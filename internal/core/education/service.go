// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"context"
	"log/slog"
	"time"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/validate"
	"github.com/kanoon/kanoon/pkg/pagination"
	"github.com/kanoon/kanoon/pkg/pointer"
)

type Service struct {
	courses    CourseRepository
	classes    ClassRepository
	attendance AttendanceRepository
	tx         postgres.TxRunner
	logger     *slog.Logger
}

func NewService(courses CourseRepository, classes ClassRepository, attendance AttendanceRepository, tx postgres.TxRunner, logger *slog.Logger) *Service {
	return &Service{courses: courses, classes: classes, attendance: attendance, tx: tx, logger: logger}
}

// # Courses

type CourseInput struct {
	Name    *string `json:"name"`
	Faculty *int    `json:"fac"`
	Grade   *int    `json:"grade"`
	Major   *string `json:"major"`
}

func (input CourseInput) apply(course *Course) {
	course.Name = pointer.Fallback(input.Name, course.Name)
	course.Faculty = pointer.Fallback(input.Faculty, course.Faculty)
	course.Grade = pointer.Fallback(input.Grade, course.Grade)
	if input.Major != nil {
		course.Major = input.Major
	}
}

func validateCourse(course *Course) error {
	return (&validate.Validator{}).
		Required("name", course.Name).
		MaxLen("name", course.Name, 50).
		Range("fac", course.Faculty, 1, 4).
		Custom("grade", course.Grade <= 0, "This field is required").
		Err()
}

func (service *Service) ListCourses(ctx context.Context, params pagination.Params) ([]*Course, int, error) {
	return service.courses.ListCourses(ctx, params)
}

func (service *Service) GetCourse(ctx context.Context, id int64) (*Course, error) {
	return service.courses.GetCourse(ctx, id)
}

func (service *Service) CreateCourse(ctx context.Context, input CourseInput) (*Course, error) {
	course := &Course{}
	input.apply(course)
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if err := service.courses.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (service *Service) UpdateCourse(ctx context.Context, id int64, input CourseInput) (*Course, error) {
	course, err := service.courses.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(course)
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if err := service.courses.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course. A course that still has lectures is a conflict.
func (service *Service) DeleteCourse(ctx context.Context, id int64) error {
	return service.courses.DeleteCourse(ctx, id)
}

// # Lectures

type LectureInput struct {
	Name      *string `json:"name"`
	Group     *string `json:"group"`
	TeacherID *int64  `json:"teacher_id"`
}

func (input LectureInput) apply(lecture *Lecture) {
	lecture.Name = pointer.Fallback(input.Name, lecture.Name)
	lecture.TeacherID = pointer.Fallback(input.TeacherID, lecture.TeacherID)
	if input.Group != nil {
		lecture.Group = input.Group
	}
}

func validateLecture(lecture *Lecture) error {
	return (&validate.Validator{}).
		Required("name", lecture.Name).
		MaxLen("name", lecture.Name, 50).
		Custom("teacher_id", lecture.TeacherID <= 0, "This field is required").
		Err()
}

func (service *Service) ListLectures(ctx context.Context, courseID int64, params pagination.Params) ([]*Lecture, int, error) {
	if _, err := service.courses.GetCourse(ctx, courseID); err != nil {
		return nil, 0, err
	}
	return service.courses.ListLectures(ctx, courseID, params)
}

// GetLecture loads a lecture, optionally through its course path. A lecture
// of another course is not found.
func (service *Service) GetLecture(ctx context.Context, courseID, id int64) (*Lecture, error) {
	lecture, err := service.courses.GetLecture(ctx, id)
	if err != nil {
		return nil, err
	}
	if courseID != 0 && lecture.CourseID != courseID {
		return nil, apperr.NotFound("Lecture")
	}
	return lecture, nil
}

func (service *Service) CreateLecture(ctx context.Context, courseID int64, input LectureInput) (*Lecture, error) {
	if _, err := service.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	lecture := &Lecture{CourseID: courseID}
	input.apply(lecture)
	if err := validateLecture(lecture); err != nil {
		return nil, err
	}
	if err := service.courses.CreateLecture(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (service *Service) UpdateLecture(ctx context.Context, courseID, id int64, input LectureInput) (*Lecture, error) {
	lecture, err := service.GetLecture(ctx, courseID, id)
	if err != nil {
		return nil, err
	}
	input.apply(lecture)
	if err := validateLecture(lecture); err != nil {
		return nil, err
	}
	if err := service.courses.UpdateLecture(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// DeleteLecture removes a lecture with its attendance sheets, sessions,
// results, exams and enrolments. A lecture that still has a report is kept
// and reported as a conflict.
func (service *Service) DeleteLecture(ctx context.Context, courseID, id int64) error {
	if _, err := service.GetLecture(ctx, courseID, id); err != nil {
		return err
	}
	err := service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.attendance.DeleteAttendances(ctx, id, 0, 0); err != nil {
			return err
		}
		if err := service.attendance.DeleteLectureSessions(ctx, id); err != nil {
			return err
		}
		if err := service.classes.DeleteResults(ctx, id, 0); err != nil {
			return err
		}
		if err := service.classes.DeleteExams(ctx, id); err != nil {
			return err
		}
		if err := service.classes.UnenrolAll(ctx, id); err != nil {
			return err
		}
		return service.courses.DeleteLecture(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "lecture_deleted", slog.Int64("lecture_id", id))
	return nil
}

// # Enrolments

type EnrolInput struct {
	StudentID *int64 `json:"student_id"`
}

func (service *Service) ListEnrolments(ctx context.Context, lectureID int64, params pagination.Params) ([]*Enrolment, int, error) {
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, 0, err
	}
	return service.classes.ListEnrolments(ctx, lectureID, params)
}

func (service *Service) GetEnrolment(ctx context.Context, lectureID, studentID int64) (*Enrolment, error) {
	enrolled, err := service.classes.IsEnrolled(ctx, lectureID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.NotFound("Enrolment")
	}
	return &Enrolment{LectureID: lectureID, StudentID: studentID}, nil
}

func (service *Service) Enrol(ctx context.Context, lectureID int64, input EnrolInput) (*Enrolment, error) {
	if input.StudentID == nil || *input.StudentID <= 0 {
		return nil, validate.RequiredError("student_id", "This field is required")
	}
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, err
	}
	enrolment := &Enrolment{LectureID: lectureID, StudentID: *input.StudentID}
	if err := service.classes.Enrol(ctx, enrolment); err != nil {
		return nil, err
	}
	return enrolment, nil
}

// Unenrol removes a student from a lecture along with their exam results
// and attendance rows.
func (service *Service) Unenrol(ctx context.Context, lectureID, studentID int64) error {
	return service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.attendance.DeleteAttendances(ctx, lectureID, 0, studentID); err != nil {
			return err
		}
		if err := service.classes.DeleteResults(ctx, lectureID, studentID); err != nil {
			return err
		}
		return service.classes.Unenrol(ctx, lectureID, studentID)
	})
}

// # Exams

type ExamInput struct {
	Datetime *time.Time `json:"datetime"`
	Kind     *string    `json:"type"`
	File     *string    `json:"file"`
}

func (input ExamInput) apply(exam *Exam) {
	exam.Datetime = pointer.Fallback(input.Datetime, exam.Datetime)
	exam.Kind = pointer.Fallback(input.Kind, exam.Kind)
	if input.File != nil {
		exam.File = input.File
	}
}

func validateExam(exam *Exam) error {
	return (&validate.Validator{}).
		Custom("datetime", exam.Datetime.IsZero(), "This field is required").
		OneOf("type", exam.Kind, ExamQuiz, ExamMidterm, ExamFinal).
		Err()
}

func (service *Service) ListExams(ctx context.Context, lectureID int64, params pagination.Params) ([]*Exam, int, error) {
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, 0, err
	}
	return service.classes.ListExams(ctx, lectureID, params)
}

// GetExam loads an exam, optionally through its lecture path.
func (service *Service) GetExam(ctx context.Context, lectureID, id int64) (*Exam, error) {
	exam, err := service.classes.GetExam(ctx, id)
	if err != nil {
		return nil, err
	}
	if lectureID != 0 && exam.LectureID != lectureID {
		return nil, apperr.NotFound("Exam")
	}
	return exam, nil
}

func (service *Service) CreateExam(ctx context.Context, lectureID int64, input ExamInput) (*Exam, error) {
	if _, err := service.courses.GetLecture(ctx, lectureID); err != nil {
		return nil, err
	}
	exam := &Exam{LectureID: lectureID}
	input.apply(exam)
	if err := validateExam(exam); err != nil {
		return nil, err
	}
	if err := service.classes.CreateExam(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (service *Service) UpdateExam(ctx context.Context, lectureID, id int64, input ExamInput) (*Exam, error) {
	exam, err := service.GetExam(ctx, lectureID, id)
	if err != nil {
		return nil, err
	}
	input.apply(exam)
	if err := validateExam(exam); err != nil {
		return nil, err
	}
	if err := service.classes.UpdateExam(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (service *Service) DeleteExam(ctx context.Context, lectureID, id int64) error {
	if _, err := service.GetExam(ctx, lectureID, id); err != nil {
		return err
	}
	return service.tx.InTx(ctx, func(ctx context.Context) error {
		if err := service.classes.DeleteExamResults(ctx, id); err != nil {
			return err
		}
		return service.classes.DeleteExam(ctx, id)
	})
}

// # Results

type ResultInput struct {
	StudentID *int64 `json:"student_id"`
	Score     *int   `json:"score"`
}

func (service *Service) ListResults(ctx context.Context, examID int64, params pagination.Params) ([]*Result, int, error) {
	if _, err := service.classes.GetExam(ctx, examID); err != nil {
		return nil, 0, err
	}
	return service.classes.ListResults(ctx, examID, params)
}

func (service *Service) GetResult(ctx context.Context, examID, studentID int64) (*Result, error) {
	return service.classes.GetResult(ctx, examID, studentID)
}

/*
CreateResult grades a student on an exam.

Only students enrolled in the exam's lecture can be graded, and a second
grade for the same exam is a conflict; corrections go through [UpdateResult].
*/
func (service *Service) CreateResult(ctx context.Context, examID int64, input ResultInput) (*Result, error) {
	v := (&validate.Validator{}).
		Custom("student_id", input.StudentID == nil || *input.StudentID <= 0, "This field is required").
		Custom("score", input.Score == nil, "This field is required")
	if input.Score != nil {
		v.Range("score", *input.Score, 0, MaxScore)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	exam, err := service.classes.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	enrolled, err := service.classes.IsEnrolled(ctx, exam.LectureID, *input.StudentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, validate.RequiredError("student_id", "Student is not enrolled in this lecture")
	}

	if _, err := service.classes.GetResult(ctx, examID, *input.StudentID); err == nil {
		return nil, apperr.Conflict("A result for this student already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	result := &Result{ExamID: examID, StudentID: *input.StudentID, Score: *input.Score}
	if err := service.classes.PutResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (service *Service) UpdateResult(ctx context.Context, examID, studentID int64, input ResultInput) (*Result, error) {
	result, err := service.classes.GetResult(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}
	result.Score = pointer.Fallback(input.Score, result.Score)
	if err := (&validate.Validator{}).Range("score", result.Score, 0, MaxScore).Err(); err != nil {
		return nil, err
	}
	if err := service.classes.PutResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (service *Service) DeleteResult(ctx context.Context, examID, studentID int64) error {
	return service.classes.DeleteResult(ctx, examID, studentID)
}
