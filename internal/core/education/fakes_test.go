// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/kanoon/kanoon/internal/core/education"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// memoryRepository implements every education repository.
type memoryRepository struct {
	courses    *memtable.Table[education.Course]
	lectures   *memtable.Table[education.Lecture]
	enrolments *memtable.Table[education.Enrolment]
	exams      *memtable.Table[education.Exam]
	results    *memtable.Table[education.Result]
	sessions   *memtable.Table[education.LectureSession]
	attendance *memtable.Table[education.Attendance]
}

func newTestService() (*education.Service, *memoryRepository) {
	repo := &memoryRepository{
		courses:    memtable.New[education.Course](),
		lectures:   memtable.New[education.Lecture](),
		enrolments: memtable.New[education.Enrolment](),
		exams:      memtable.New[education.Exam](),
		results:    memtable.New[education.Result](),
		sessions:   memtable.New[education.LectureSession](),
		attendance: memtable.New[education.Attendance](),
	}
	tx := memtable.NewTx(repo.courses, repo.lectures, repo.enrolments, repo.exams, repo.results, repo.sessions, repo.attendance)
	return education.NewService(repo, repo, repo, tx, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func courseByID(id int64) func(education.Course) bool {
	return func(c education.Course) bool { return c.ID == id }
}

func lectureByID(id int64) func(education.Lecture) bool {
	return func(l education.Lecture) bool { return l.ID == id }
}

func examByID(id int64) func(education.Exam) bool {
	return func(e education.Exam) bool { return e.ID == id }
}

func enrolmentByKey(lectureID, studentID int64) func(education.Enrolment) bool {
	return func(e education.Enrolment) bool { return e.LectureID == lectureID && e.StudentID == studentID }
}

func resultByKey(examID, studentID int64) func(education.Result) bool {
	return func(r education.Result) bool { return r.ExamID == examID && r.StudentID == studentID }
}

// # Courses

func (repo *memoryRepository) ListCourses(_ context.Context, params pagination.Params) ([]*education.Course, int, error) {
	items, total := memtable.Page(repo.courses.Select(nil), params)
	return items, total, nil
}

func (repo *memoryRepository) GetCourse(_ context.Context, id int64) (*education.Course, error) {
	found, ok := repo.courses.Find(courseByID(id))
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateCourse(_ context.Context, course *education.Course) error {
	course.ID = repo.courses.NextID()
	repo.courses.Insert(*course)
	return nil
}

func (repo *memoryRepository) UpdateCourse(_ context.Context, course *education.Course) error {
	if !repo.courses.Replace(courseByID(course.ID), *course) {
		return apperr.NotFound("Course")
	}
	return nil
}

func (repo *memoryRepository) DeleteCourse(_ context.Context, id int64) error {
	if repo.lectures.Any(func(l education.Lecture) bool { return l.CourseID == id }) {
		return apperr.Conflict("Course is still referenced")
	}
	if repo.courses.Remove(courseByID(id)) == 0 {
		return apperr.NotFound("Course")
	}
	return nil
}

// # Lectures

func (repo *memoryRepository) ListLectures(_ context.Context, courseID int64, params pagination.Params) ([]*education.Lecture, int, error) {
	items, total := memtable.Page(repo.lectures.Select(func(l education.Lecture) bool { return l.CourseID == courseID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetLecture(_ context.Context, id int64) (*education.Lecture, error) {
	found, ok := repo.lectures.Find(lectureByID(id))
	if !ok {
		return nil, apperr.NotFound("Lecture")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateLecture(_ context.Context, lecture *education.Lecture) error {
	lecture.ID = repo.lectures.NextID()
	repo.lectures.Insert(*lecture)
	return nil
}

func (repo *memoryRepository) UpdateLecture(_ context.Context, lecture *education.Lecture) error {
	if !repo.lectures.Replace(lectureByID(lecture.ID), *lecture) {
		return apperr.NotFound("Lecture")
	}
	return nil
}

func (repo *memoryRepository) DeleteLecture(_ context.Context, id int64) error {
	if repo.lectures.Remove(lectureByID(id)) == 0 {
		return apperr.NotFound("Lecture")
	}
	return nil
}

// # Enrolments

func (repo *memoryRepository) ListEnrolments(_ context.Context, lectureID int64, params pagination.Params) ([]*education.Enrolment, int, error) {
	items, total := memtable.Page(repo.enrolments.Select(func(e education.Enrolment) bool { return e.LectureID == lectureID }), params)
	return items, total, nil
}

func (repo *memoryRepository) IsEnrolled(_ context.Context, lectureID, studentID int64) (bool, error) {
	return repo.enrolments.Any(enrolmentByKey(lectureID, studentID)), nil
}

func (repo *memoryRepository) Enrol(_ context.Context, enrolment *education.Enrolment) error {
	if repo.enrolments.Any(enrolmentByKey(enrolment.LectureID, enrolment.StudentID)) {
		return apperr.Conflict("Duplicate value violates lecture_user_pkey")
	}
	repo.enrolments.Insert(*enrolment)
	return nil
}

func (repo *memoryRepository) Unenrol(_ context.Context, lectureID, studentID int64) error {
	if repo.enrolments.Remove(enrolmentByKey(lectureID, studentID)) == 0 {
		return apperr.NotFound("Enrolment")
	}
	return nil
}

func (repo *memoryRepository) UnenrolAll(_ context.Context, lectureID int64) error {
	repo.enrolments.Remove(func(e education.Enrolment) bool { return e.LectureID == lectureID })
	return nil
}

// # Exams

func (repo *memoryRepository) ListExams(_ context.Context, lectureID int64, params pagination.Params) ([]*education.Exam, int, error) {
	items, total := memtable.Page(repo.exams.Select(func(e education.Exam) bool { return e.LectureID == lectureID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetExam(_ context.Context, id int64) (*education.Exam, error) {
	found, ok := repo.exams.Find(examByID(id))
	if !ok {
		return nil, apperr.NotFound("Exam")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateExam(_ context.Context, exam *education.Exam) error {
	exam.ID = repo.exams.NextID()
	repo.exams.Insert(*exam)
	return nil
}

func (repo *memoryRepository) UpdateExam(_ context.Context, exam *education.Exam) error {
	if !repo.exams.Replace(examByID(exam.ID), *exam) {
		return apperr.NotFound("Exam")
	}
	return nil
}

func (repo *memoryRepository) DeleteExam(_ context.Context, id int64) error {
	if repo.exams.Remove(examByID(id)) == 0 {
		return apperr.NotFound("Exam")
	}
	return nil
}

func (repo *memoryRepository) DeleteExams(_ context.Context, lectureID int64) error {
	repo.exams.Remove(func(e education.Exam) bool { return e.LectureID == lectureID })
	return nil
}

// # Results

func (repo *memoryRepository) ListResults(_ context.Context, examID int64, params pagination.Params) ([]*education.Result, int, error) {
	items, total := memtable.Page(repo.results.Select(func(r education.Result) bool { return r.ExamID == examID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetResult(_ context.Context, examID, studentID int64) (*education.Result, error) {
	found, ok := repo.results.Find(resultByKey(examID, studentID))
	if !ok {
		return nil, apperr.NotFound("Result")
	}
	return &found, nil
}

func (repo *memoryRepository) PutResult(_ context.Context, result *education.Result) error {
	if !repo.results.Replace(resultByKey(result.ExamID, result.StudentID), *result) {
		repo.results.Insert(*result)
	}
	return nil
}

func (repo *memoryRepository) DeleteResult(_ context.Context, examID, studentID int64) error {
	if repo.results.Remove(resultByKey(examID, studentID)) == 0 {
		return apperr.NotFound("Result")
	}
	return nil
}

func (repo *memoryRepository) DeleteResults(_ context.Context, lectureID, studentID int64) error {
	repo.results.Remove(func(r education.Result) bool {
		exam, ok := repo.exams.Find(examByID(r.ExamID))
		return ok && exam.LectureID == lectureID && (studentID == 0 || r.StudentID == studentID)
	})
	return nil
}

func (repo *memoryRepository) DeleteExamResults(_ context.Context, examID int64) error {
	repo.results.Remove(func(r education.Result) bool { return r.ExamID == examID })
	return nil
}

// # Lecture sessions

func lectureSessionByID(id int64) func(education.LectureSession) bool {
	return func(s education.LectureSession) bool { return s.ID == id }
}

func attendanceByKey(sessionID, studentID int64) func(education.Attendance) bool {
	return func(a education.Attendance) bool { return a.SessionID == sessionID && a.StudentID == studentID }
}

func (repo *memoryRepository) ListLectureSessions(_ context.Context, lectureID int64, params pagination.Params) ([]*education.LectureSession, int, error) {
	items, total := memtable.Page(repo.sessions.Select(func(s education.LectureSession) bool { return s.LectureID == lectureID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetLectureSession(_ context.Context, id int64) (*education.LectureSession, error) {
	found, ok := repo.sessions.Find(lectureSessionByID(id))
	if !ok {
		return nil, apperr.NotFound("Lecture session")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateLectureSession(_ context.Context, session *education.LectureSession) error {
	number := 0
	for _, existing := range repo.sessions.Select(func(s education.LectureSession) bool { return s.LectureID == session.LectureID }) {
		number = max(number, existing.Number)
	}
	session.ID = repo.sessions.NextID()
	session.Number = number + 1
	repo.sessions.Insert(*session)
	return nil
}

func (repo *memoryRepository) UpdateLectureSession(_ context.Context, session *education.LectureSession) error {
	if !repo.sessions.Replace(lectureSessionByID(session.ID), *session) {
		return apperr.NotFound("Lecture session")
	}
	return nil
}

func (repo *memoryRepository) DeleteLectureSession(_ context.Context, id int64) error {
	if repo.attendance.Any(func(a education.Attendance) bool { return a.SessionID == id }) {
		return apperr.Conflict("Lecture session is still referenced")
	}
	if repo.sessions.Remove(lectureSessionByID(id)) == 0 {
		return apperr.NotFound("Lecture session")
	}
	return nil
}

func (repo *memoryRepository) DeleteLectureSessions(_ context.Context, lectureID int64) error {
	repo.sessions.Remove(func(s education.LectureSession) bool { return s.LectureID == lectureID })
	return nil
}

// # Attendance

func (repo *memoryRepository) ListAttendance(_ context.Context, sessionID int64, params pagination.Params) ([]*education.Attendance, int, error) {
	items, total := memtable.Page(repo.attendance.Select(func(a education.Attendance) bool { return a.SessionID == sessionID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetAttendance(_ context.Context, sessionID, studentID int64) (*education.Attendance, error) {
	found, ok := repo.attendance.Find(attendanceByKey(sessionID, studentID))
	if !ok {
		return nil, apperr.NotFound("Attendance")
	}
	return &found, nil
}

func (repo *memoryRepository) CreateAttendance(_ context.Context, row *education.Attendance) error {
	if repo.attendance.Any(attendanceByKey(row.SessionID, row.StudentID)) {
		return apperr.Conflict("Duplicate value violates lecture_user_session_pkey")
	}
	repo.attendance.Insert(*row)
	return nil
}

func (repo *memoryRepository) UpdateAttendance(_ context.Context, row *education.Attendance) error {
	if !repo.attendance.Replace(attendanceByKey(row.SessionID, row.StudentID), *row) {
		return apperr.NotFound("Attendance")
	}
	return nil
}

func (repo *memoryRepository) DeleteAttendance(_ context.Context, sessionID, studentID int64) error {
	if repo.attendance.Remove(attendanceByKey(sessionID, studentID)) == 0 {
		return apperr.NotFound("Attendance")
	}
	return nil
}

func (repo *memoryRepository) DeleteAttendances(_ context.Context, lectureID, sessionID, studentID int64) error {
	repo.attendance.Remove(func(a education.Attendance) bool {
		session, ok := repo.sessions.Find(lectureSessionByID(a.SessionID))
		return ok && session.LectureID == lectureID &&
			(sessionID == 0 || a.SessionID == sessionID) &&
			(studentID == 0 || a.StudentID == studentID)
	})
	return nil
}
