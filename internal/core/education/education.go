// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package education runs the tutoring program: courses, their lectures,
enrolled students, class sessions with attendance, exams and exam results.
*/
package education

import "time"

// Exam kinds.
const (
	ExamQuiz    = "quiz"
	ExamMidterm = "midterm"
	ExamFinal   = "final"
)

// MaxScore is the top of the grading scale.
const MaxScore = 20

type Course struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Faculty int     `json:"fac" db:"fac"`
	Grade   int     `json:"grade" db:"grade"`
	Major   *string `json:"major" db:"major"`
}

// Lecture is one class of a course taught by a member.
type Lecture struct {
	ID        int64   `json:"id" db:"id"`
	CourseID  int64   `json:"course_id" db:"course_id"`
	Name      string  `json:"name" db:"name"`
	Group     *string `json:"group" db:"group"`
	TeacherID int64   `json:"teacher_id" db:"teacher_id"`
}

type Enrolment struct {
	LectureID int64 `json:"lecture_id" db:"lecture_id"`
	StudentID int64 `json:"student_id" db:"student_id"`
}

// LectureSession is one meeting of a lecture. Sessions are numbered from 1
// in the order they are created.
type LectureSession struct {
	ID        int64     `json:"id" db:"id"`
	LectureID int64     `json:"lecture_id" db:"lecture_id"`
	Number    int       `json:"number" db:"number"`
	Datetime  time.Time `json:"datetime" db:"datetime"`
	EndTime   string    `json:"end_time" db:"end_time"`
	Subject   *string   `json:"subject" db:"subject"`
	Location  *string   `json:"location" db:"location"`
}

// Attendance is the sheet row of one enrolled student for one session.
type Attendance struct {
	SessionID    int64   `json:"session_id" db:"session_id"`
	StudentID    int64   `json:"student_id" db:"student_id"`
	Present      bool    `json:"present" db:"present"`
	HomeworkMark *int    `json:"homework_mark" db:"homework_mark"`
	Description  *string `json:"description" db:"description"`
}

type Exam struct {
	ID        int64     `json:"id" db:"id"`
	LectureID int64     `json:"lecture_id" db:"lecture_id"`
	Datetime  time.Time `json:"datetime" db:"datetime"`
	Kind      string    `json:"type" db:"type"`
	File      *string   `json:"file" db:"file"`
}

type Result struct {
	ExamID    int64 `json:"exam_id" db:"exam_id"`
	StudentID int64 `json:"student_id" db:"student_id"`
	Score     int   `json:"score" db:"score"`
}
