// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	requestutil "github.com/kanoon/kanoon/internal/platform/request"
	"github.com/kanoon/kanoon/internal/platform/respond"
	"github.com/kanoon/kanoon/pkg/pagination"
)

type Handler struct {
	service *Service
	gate    *access.Gate
}

func NewHandler(service *Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

/*
RegisterRoutes mounts /courses, /lectures and /exams on the API root.
Class sessions and their attendance sheets hang off /lectures/{lecture_id}.

Every route requires the education role.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guard := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Category: access.CategoryEducation})
	}

	router.Route("/courses", func(r chi.Router) {
		r.With(guard("courses.list")).Get("/", handler.listCourses)
		r.With(guard("courses.create")).Post("/", handler.createCourse)
		r.With(guard("courses.get")).Get("/{course_id}", handler.getCourse)
		r.With(guard("courses.update")).Patch("/{course_id}", handler.updateCourse)
		r.With(guard("courses.delete")).Delete("/{course_id}", handler.deleteCourse)

		r.With(guard("lectures.list")).Get("/{course_id}/lectures", handler.listLectures)
		r.With(guard("lectures.create")).Post("/{course_id}/lectures", handler.createLecture)
		r.With(guard("lectures.get")).Get("/{course_id}/lectures/{lecture_id}", handler.getLecture)
		r.With(guard("lectures.update")).Patch("/{course_id}/lectures/{lecture_id}", handler.updateLecture)
		r.With(guard("lectures.delete")).Delete("/{course_id}/lectures/{lecture_id}", handler.deleteLecture)
	})

	router.Route("/lectures/{lecture_id}", func(r chi.Router) {
		r.With(guard("lectures.users.list")).Get("/users", handler.listEnrolments)
		r.With(guard("lectures.users.add")).Post("/users", handler.enrol)
		r.With(guard("lectures.users.get")).Get("/users/{user_id}", handler.getEnrolment)
		r.With(guard("lectures.users.remove")).Delete("/users/{user_id}", handler.unenrol)

		r.With(guard("lectures.sessions.list")).Get("/sessions", handler.listLectureSessions)
		r.With(guard("lectures.sessions.create")).Post("/sessions", handler.createLectureSession)
		r.With(guard("lectures.sessions.get")).Get("/sessions/{session_id}", handler.getLectureSession)
		r.With(guard("lectures.sessions.update")).Patch("/sessions/{session_id}", handler.updateLectureSession)
		r.With(guard("lectures.sessions.delete")).Delete("/sessions/{session_id}", handler.deleteLectureSession)

		r.With(guard("lectures.attendance.list")).Get("/sessions/{session_id}/users", handler.listAttendance)
		r.With(guard("lectures.attendance.create")).Post("/sessions/{session_id}/users", handler.recordAttendance)
		r.With(guard("lectures.attendance.get")).Get("/sessions/{session_id}/users/{user_id}", handler.getAttendance)
		r.With(guard("lectures.attendance.update")).Patch("/sessions/{session_id}/users/{user_id}", handler.updateAttendance)
		r.With(guard("lectures.attendance.delete")).Delete("/sessions/{session_id}/users/{user_id}", handler.deleteAttendance)

		r.With(guard("exams.list")).Get("/exams", handler.listExams)
		r.With(guard("exams.create")).Post("/exams", handler.createExam)
		r.With(guard("exams.get")).Get("/exams/{exam_id}", handler.getExam)
		r.With(guard("exams.update")).Patch("/exams/{exam_id}", handler.updateExam)
		r.With(guard("exams.delete")).Delete("/exams/{exam_id}", handler.deleteExam)
	})

	router.Route("/exams/{exam_id}/results", func(r chi.Router) {
		r.With(guard("results.list")).Get("/", handler.listResults)
		r.With(guard("results.create")).Post("/", handler.createResult)
		r.With(guard("results.get")).Get("/{user_id}", handler.getResult)
		r.With(guard("results.update")).Patch("/{user_id}", handler.updateResult)
		r.With(guard("results.delete")).Delete("/{user_id}", handler.deleteResult)
	})
}

// # Courses

func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	courses, total, err := handler.service.ListCourses(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	var input CourseInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.CreateCourse(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, course)
}

func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, "course_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.GetCourse(request.Context(), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, course)
}

func (handler *Handler) updateCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, "course_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CourseInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.UpdateCourse(request.Context(), courseID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, course)
}

func (handler *Handler) deleteCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, "course_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCourse(request.Context(), courseID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Lectures

func (handler *Handler) listLectures(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, "course_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	lectures, total, err := handler.service.ListLectures(request.Context(), courseID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, lectures, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createLecture(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, "course_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LectureInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lecture, err := handler.service.CreateLecture(request.Context(), courseID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, lecture)
}

func (handler *Handler) getLecture(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "course_id", "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lecture, err := handler.service.GetLecture(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lecture)
}

func (handler *Handler) updateLecture(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "course_id", "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LectureInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lecture, err := handler.service.UpdateLecture(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lecture)
}

func (handler *Handler) deleteLecture(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "course_id", "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLecture(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Enrolments

func (handler *Handler) listEnrolments(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	enrolments, total, err := handler.service.ListEnrolments(request.Context(), lectureID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, enrolments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) enrol(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input EnrolInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrolment, err := handler.service.Enrol(request.Context(), lectureID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, enrolment)
}

func (handler *Handler) getEnrolment(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrolment, err := handler.service.GetEnrolment(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enrolment)
}

func (handler *Handler) unenrol(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unenrol(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Exams

func (handler *Handler) listExams(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	exams, total, err := handler.service.ListExams(request.Context(), lectureID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, exams, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createExam(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ExamInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	exam, err := handler.service.CreateExam(request.Context(), lectureID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, exam)
}

func (handler *Handler) getExam(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "exam_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	exam, err := handler.service.GetExam(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, exam)
}

func (handler *Handler) updateExam(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "exam_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ExamInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	exam, err := handler.service.UpdateExam(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, exam)
}

func (handler *Handler) deleteExam(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "exam_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteExam(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Results

func (handler *Handler) listResults(writer http.ResponseWriter, request *http.Request) {
	examID, err := requestutil.Int64Param(request, "exam_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	results, total, err := handler.service.ListResults(request.Context(), examID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, results, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createResult(writer http.ResponseWriter, request *http.Request) {
	examID, err := requestutil.Int64Param(request, "exam_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ResultInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateResult(request.Context(), examID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) getResult(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "exam_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetResult(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) updateResult(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "exam_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ResultInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateResult(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) deleteResult(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "exam_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteResult(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
