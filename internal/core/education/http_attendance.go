// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package education

import (
	"net/http"

	requestutil "github.com/kanoon/kanoon/internal/platform/request"
	"github.com/kanoon/kanoon/internal/platform/respond"
	"github.com/kanoon/kanoon/pkg/pagination"
)

// # Lecture sessions

func (handler *Handler) listLectureSessions(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	sessions, total, err := handler.service.ListLectureSessions(request.Context(), lectureID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, sessions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createLectureSession(writer http.ResponseWriter, request *http.Request) {
	lectureID, err := requestutil.Int64Param(request, "lecture_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LectureSessionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.CreateLectureSession(request.Context(), lectureID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) getLectureSession(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.GetLectureSession(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) updateLectureSession(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LectureSessionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.UpdateLectureSession(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) deleteLectureSession(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLectureSession(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Attendance

func (handler *Handler) listAttendance(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	rows, total, err := handler.service.ListAttendance(request.Context(), ids[0], ids[1], params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, rows, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) recordAttendance(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendanceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	row, err := handler.service.RecordAttendance(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, row)
}

func (handler *Handler) getAttendance(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	row, err := handler.service.GetAttendance(request.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, row)
}

func (handler *Handler) updateAttendance(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AttendanceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	row, err := handler.service.UpdateAttendance(request.Context(), ids[0], ids[1], ids[2], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, row)
}

func (handler *Handler) deleteAttendance(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "lecture_id", "session_id", "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAttendance(request.Context(), ids[0], ids[1], ids[2]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
