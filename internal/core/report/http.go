// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kanoon/kanoon/internal/access"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/middleware"
	requestutil "github.com/kanoon/kanoon/internal/platform/request"
	"github.com/kanoon/kanoon/internal/platform/respond"
	"github.com/kanoon/kanoon/internal/platform/validate"
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
RegisterRoutes mounts /report and /reports on the API root.

  - /report?field=<kind>&id=<target> requires the role of the named kind.
  - /report/{report_id} and its media require the role of the stored kind.
  - /reports, the index across kinds, requires the report role.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	guardTarget := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Resolve: resolveTarget})
	}
	guardReport := func(name string) func(http.Handler) http.Handler {
		return middleware.Guard(handler.gate, access.Operation{Name: name, Resolve: handler.resolveReport})
	}

	router.With(middleware.Guard(handler.gate, access.Operation{Name: "reports.list", Category: access.CategoryReport})).
		Get("/reports", handler.list)

	router.With(guardTarget("reports.target.get")).Get("/report", handler.getByTarget)
	router.With(guardTarget("reports.target.create")).Post("/report", handler.create)

	router.Route("/report/{report_id}", func(r chi.Router) {
		r.With(guardReport("reports.get")).Get("/", handler.get)
		r.With(guardReport("reports.update")).Patch("/", handler.update)
		r.With(guardReport("reports.delete")).Delete("/", handler.delete)

		r.With(guardReport("reports.multimedias.list")).Get("/multimedias", handler.listMultimedia)
		r.With(guardReport("reports.multimedias.create")).Post("/multimedias", handler.createMultimedia)
		r.With(guardReport("reports.multimedias.get")).Get("/multimedias/{multimedia_id}", handler.getMultimedia)
		r.With(guardReport("reports.multimedias.update")).Patch("/multimedias/{multimedia_id}", handler.updateMultimedia)
		r.With(guardReport("reports.multimedias.delete")).Delete("/multimedias/{multimedia_id}", handler.deleteMultimedia)
		r.With(guardReport("reports.multimedias.download")).Get("/multimedias/{multimedia_id}/download", handler.download)
	})
}

// parseTarget reads the field and id query parameters of /report.
func parseTarget(target access.Target) (string, int64, error) {
	kind := target.Param("field")
	if err := ValidateKind(kind); err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(target.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, validate.RequiredError("id", "Must be a positive number")
	}
	return kind, id, nil
}

func resolveTarget(_ context.Context, target access.Target) (access.RoleSet, error) {
	kind, _, err := parseTarget(target)
	if err != nil {
		return nil, err
	}
	return access.ReportFamily.RequiredRoles(kind)
}

func (handler *Handler) resolveReport(ctx context.Context, target access.Target) (access.RoleSet, error) {
	id, err := strconv.ParseInt(target.Param("report_id"), 10, 64)
	if err != nil {
		return nil, apperr.NotFound("Report")
	}
	return access.ReportFamily.ResolveRequiredRoles(ctx, access.KindLoaderFunc(handler.service.KindOf), id)
}

// query exposes the query string as an access.Target.
type query url.Values

func (q query) Param(name string) string { return url.Values(q).Get(name) }

// # Reports

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	reports, total, err := handler.service.List(request.Context(), requestutil.Query(request, "type"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reports, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getByTarget(writer http.ResponseWriter, request *http.Request) {
	kind, targetID, err := parseTarget(query(request.URL.Query()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.GetByTarget(request.Context(), kind, targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, targetID, err := parseTarget(query(request.URL.Query()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Create(request.Context(), kind, targetID, principal.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, report)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.Int64Param(request, "report_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Get(request.Context(), reportID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.Int64Param(request, "report_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Update(request.Context(), reportID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.Int64Param(request, "report_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), reportID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Multimedia

func (handler *Handler) listMultimedia(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.Int64Param(request, "report_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	media, total, err := handler.service.ListMultimedia(request.Context(), reportID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, media, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createMultimedia(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.Int64Param(request, "report_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MultimediaInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	media, err := handler.service.CreateMultimedia(request.Context(), reportID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, media)
}

func (handler *Handler) getMultimedia(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "report_id", "multimedia_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	media, err := handler.service.GetMultimedia(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, media)
}

func (handler *Handler) updateMultimedia(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "report_id", "multimedia_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MultimediaInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	media, err := handler.service.UpdateMultimedia(request.Context(), ids[0], ids[1], input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, media)
}

func (handler *Handler) deleteMultimedia(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "report_id", "multimedia_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMultimedia(request.Context(), ids[0], ids[1]); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.Int64Params(request, "report_id", "multimedia_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Download(request.Context(), ids[0], ids[1])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}
