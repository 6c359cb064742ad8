// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"context"

	"github.com/kanoon/kanoon/internal/platform/dberr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// PostgresRepository implements [CourseRepository] and [ClassRepository] on
// the edu schema.
type PostgresRepository struct {
	db *postgres.DB
}

func NewPostgresRepository(db *postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Courses

const courseColumns = `id, name, fac, grade, major`

func (repository *PostgresRepository) ListCourses(ctx context.Context, params pagination.Params) ([]*Course, int, error) {
	courses, total, err := postgres.Page[Course](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.course`,
		`SELECT `+courseColumns+` FROM edu.course ORDER BY id`,
		params,
	)
	return courses, total, dberr.Wrap(err, "list_courses")
}

func (repository *PostgresRepository) GetCourse(ctx context.Context, id int64) (*Course, error) {
	course, err := postgres.One[Course](ctx, repository.db.Querier(ctx),
		`SELECT `+courseColumns+` FROM edu.course WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_course", "Course")
	}
	return course, nil
}

func (repository *PostgresRepository) CreateCourse(ctx context.Context, course *Course) error {
	const query = `INSERT INTO edu.course (name, fac, grade, major) VALUES ($1, $2, $3, $4) RETURNING id`
	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		course.Name, course.Faculty, course.Grade, course.Major).Scan(&course.ID)
	return dberr.Wrap(err, "create_course")
}

func (repository *PostgresRepository) UpdateCourse(ctx context.Context, course *Course) error {
	const query = `UPDATE edu.course SET name = $2, fac = $3, grade = $4, major = $5 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_course", "Course", query,
		course.ID, course.Name, course.Faculty, course.Grade, course.Major)
}

func (repository *PostgresRepository) DeleteCourse(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_course", "Course",
		`DELETE FROM edu.course WHERE id = $1`, id)
}

// # Lectures

const lectureColumns = `id, course_id, name, "group", teacher_id`

func (repository *PostgresRepository) ListLectures(ctx context.Context, courseID int64, params pagination.Params) ([]*Lecture, int, error) {
	lectures, total, err := postgres.Page[Lecture](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.lecture WHERE course_id = $1`,
		`SELECT `+lectureColumns+` FROM edu.lecture WHERE course_id = $1 ORDER BY id`,
		params, courseID,
	)
	return lectures, total, dberr.Wrap(err, "list_lectures")
}

func (repository *PostgresRepository) GetLecture(ctx context.Context, id int64) (*Lecture, error) {
	lecture, err := postgres.One[Lecture](ctx, repository.db.Querier(ctx),
		`SELECT `+lectureColumns+` FROM edu.lecture WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_lecture", "Lecture")
	}
	return lecture, nil
}

func (repository *PostgresRepository) CreateLecture(ctx context.Context, lecture *Lecture) error {
	const query = `
		INSERT INTO edu.lecture (course_id, name, "group", teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		lecture.CourseID, lecture.Name, lecture.Group, lecture.TeacherID).Scan(&lecture.ID)
	return dberr.Wrap(err, "create_lecture")
}

func (repository *PostgresRepository) UpdateLecture(ctx context.Context, lecture *Lecture) error {
	const query = `UPDATE edu.lecture SET name = $2, "group" = $3, teacher_id = $4 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_lecture", "Lecture", query,
		lecture.ID, lecture.Name, lecture.Group, lecture.TeacherID)
}

func (repository *PostgresRepository) DeleteLecture(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_lecture", "Lecture",
		`DELETE FROM edu.lecture WHERE id = $1`, id)
}

// # Enrolments

func (repository *PostgresRepository) ListEnrolments(ctx context.Context, lectureID int64, params pagination.Params) ([]*Enrolment, int, error) {
	enrolments, total, err := postgres.Page[Enrolment](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.lecture_user WHERE lecture_id = $1`,
		`SELECT lecture_id, student_id FROM edu.lecture_user WHERE lecture_id = $1 ORDER BY student_id`,
		params, lectureID,
	)
	return enrolments, total, dberr.Wrap(err, "list_lecture_users")
}

func (repository *PostgresRepository) IsEnrolled(ctx context.Context, lectureID, studentID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM edu.lecture_user WHERE lecture_id = $1 AND student_id = $2)`
	var enrolled bool
	err := repository.db.Querier(ctx).QueryRow(ctx, query, lectureID, studentID).Scan(&enrolled)
	return enrolled, dberr.Wrap(err, "check_lecture_user")
}

func (repository *PostgresRepository) Enrol(ctx context.Context, enrolment *Enrolment) error {
	_, err := repository.db.Querier(ctx).Exec(ctx,
		`INSERT INTO edu.lecture_user (lecture_id, student_id) VALUES ($1, $2)`,
		enrolment.LectureID, enrolment.StudentID)
	return dberr.Wrap(err, "enrol")
}

func (repository *PostgresRepository) Unenrol(ctx context.Context, lectureID, studentID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "unenrol", "Enrolment",
		`DELETE FROM edu.lecture_user WHERE lecture_id = $1 AND student_id = $2`, lectureID, studentID)
}

func (repository *PostgresRepository) UnenrolAll(ctx context.Context, lectureID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM edu.lecture_user WHERE lecture_id = $1`, lectureID)
	return dberr.Wrap(err, "unenrol_all")
}

// # Exams

const examColumns = `id, lecture_id, datetime, type, file`

func (repository *PostgresRepository) ListExams(ctx context.Context, lectureID int64, params pagination.Params) ([]*Exam, int, error) {
	exams, total, err := postgres.Page[Exam](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.exam WHERE lecture_id = $1`,
		`SELECT `+examColumns+` FROM edu.exam WHERE lecture_id = $1 ORDER BY datetime, id`,
		params, lectureID,
	)
	return exams, total, dberr.Wrap(err, "list_exams")
}

func (repository *PostgresRepository) GetExam(ctx context.Context, id int64) (*Exam, error) {
	exam, err := postgres.One[Exam](ctx, repository.db.Querier(ctx),
		`SELECT `+examColumns+` FROM edu.exam WHERE id = $1`, id)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_exam", "Exam")
	}
	return exam, nil
}

func (repository *PostgresRepository) CreateExam(ctx context.Context, exam *Exam) error {
	const query = `INSERT INTO edu.exam (lecture_id, datetime, type, file) VALUES ($1, $2, $3, $4) RETURNING id`
	err := repository.db.Querier(ctx).QueryRow(ctx, query,
		exam.LectureID, exam.Datetime, exam.Kind, exam.File).Scan(&exam.ID)
	return dberr.Wrap(err, "create_exam")
}

func (repository *PostgresRepository) UpdateExam(ctx context.Context, exam *Exam) error {
	const query = `UPDATE edu.exam SET datetime = $2, type = $3, file = $4 WHERE id = $1`
	return dberr.ExecOne(ctx, repository.db.Querier(ctx), "update_exam", "Exam", query,
		exam.ID, exam.Datetime, exam.Kind, exam.File)
}

func (repository *PostgresRepository) DeleteExam(ctx context.Context, id int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_exam", "Exam",
		`DELETE FROM edu.exam WHERE id = $1`, id)
}

func (repository *PostgresRepository) DeleteExams(ctx context.Context, lectureID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM edu.exam WHERE lecture_id = $1`, lectureID)
	return dberr.Wrap(err, "delete_exams")
}

// # Results

const resultColumns = `exam_id, student_id, score`

func (repository *PostgresRepository) ListResults(ctx context.Context, examID int64, params pagination.Params) ([]*Result, int, error) {
	results, total, err := postgres.Page[Result](ctx, repository.db.Querier(ctx),
		`SELECT count(*) FROM edu.exam_result WHERE exam_id = $1`,
		`SELECT `+resultColumns+` FROM edu.exam_result WHERE exam_id = $1 ORDER BY student_id`,
		params, examID,
	)
	return results, total, dberr.Wrap(err, "list_results")
}

func (repository *PostgresRepository) GetResult(ctx context.Context, examID, studentID int64) (*Result, error) {
	result, err := postgres.One[Result](ctx, repository.db.Querier(ctx),
		`SELECT `+resultColumns+` FROM edu.exam_result WHERE exam_id = $1 AND student_id = $2`,
		examID, studentID)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_result", "Result")
	}
	return result, nil
}

// PutResult records or corrects a score.
func (repository *PostgresRepository) PutResult(ctx context.Context, result *Result) error {
	const query = `
		INSERT INTO edu.exam_result (exam_id, student_id, score) VALUES ($1, $2, $3)
		ON CONFLICT (exam_id, student_id) DO UPDATE SET score = EXCLUDED.score`

	_, err := repository.db.Querier(ctx).Exec(ctx, query, result.ExamID, result.StudentID, result.Score)
	return dberr.Wrap(err, "put_result")
}

func (repository *PostgresRepository) DeleteResult(ctx context.Context, examID, studentID int64) error {
	return dberr.DeleteOne(ctx, repository.db.Querier(ctx), "delete_result", "Result",
		`DELETE FROM edu.exam_result WHERE exam_id = $1 AND student_id = $2`, examID, studentID)
}

func (repository *PostgresRepository) DeleteResults(ctx context.Context, lectureID, studentID int64) error {
	const query = `
		DELETE FROM edu.exam_result r
		USING edu.exam e
		WHERE r.exam_id = e.id AND e.lecture_id = $1 AND ($2::bigint = 0 OR r.student_id = $2)`

	_, err := repository.db.Querier(ctx).Exec(ctx, query, lectureID, studentID)
	return dberr.Wrap(err, "delete_lecture_results")
}

func (repository *PostgresRepository) DeleteExamResults(ctx context.Context, examID int64) error {
	_, err := repository.db.Querier(ctx).Exec(ctx, `DELETE FROM edu.exam_result WHERE exam_id = $1`, examID)
	return dberr.Wrap(err, "delete_exam_results")
}
