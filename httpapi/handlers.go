/*
handlers.go - HTTP API handlers for the cashflow scheduler

Endpoints:
  POST /solve            Solve a 30-day Plan, return the canonical Schedule
  POST /resume           Mid-month re-plan from an actual day-d closing balance
  GET  /export/{format}  Solve and render as json, csv, or md

Handler struct and writeJSON/writeError idiom follow the teacher's
api/handlers.go. Unlike the teacher, there is no persistence layer: every
request carries its own Plan, since nothing here is stored between calls.
*/
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/money"
	"github.com/warp/cashflow-scheduler/render"
	"github.com/warp/cashflow-scheduler/resume"
	"github.com/warp/cashflow-scheduler/schedule"
	"github.com/warp/cashflow-scheduler/validate"
)

// Handler holds the dispatcher configuration shared by every request.
type Handler struct {
	Config dispatch.Config
}

// NewHandler returns a Handler with the given dispatcher configuration.
func NewHandler(cfg dispatch.Config) *Handler {
	return &Handler{Config: cfg}
}

func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plan, err := req.Plan.ToPlan()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan", err)
		return
	}

	dto, status, err := h.solveAndRender(r.Context(), plan, req.Solver)
	if err != nil {
		writeError(w, status, "solve failed", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	var req ResumeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plan, err := req.Plan.ToPlan()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan", err)
		return
	}

	desiredCents, err := money.ToCents(req.EODAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid eod_amount", err)
		return
	}

	s, diag, err := resume.Resume(r.Context(), plan, req.Day, desiredCents, dispatch.ModeAuto, h.Config)
	if err != nil {
		writeError(w, statusForError(err), "resume failed", err)
		return
	}

	report := validate.Validate(plan, s)
	writeJSON(w, http.StatusOK, render.BuildDTO(plan, s, diag, report))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	var req SolveRequestDTO
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	plan, err := req.Plan.ToPlan()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan", err)
		return
	}

	dto, status, err := h.solveAndRender(r.Context(), plan, req.Solver)
	if err != nil {
		writeError(w, status, "solve failed", err)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		writeOrLog(w, render.JSON(w, dto))
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		writeOrLog(w, render.CSV(w, dto))
	case "md":
		w.Header().Set("Content-Type", "text/markdown")
		writeOrLog(w, render.Markdown(w, dto))
	default:
		writeError(w, http.StatusBadRequest, "unknown export format", nil)
	}
}

func (h *Handler) solveAndRender(ctx context.Context, plan schedule.Plan, solverName string) (render.ScheduleDTO, int, error) {
	mode := dispatch.Mode(solverName)
	s, diag, err := dispatch.Solve(ctx, plan, mode, h.Config)
	if err != nil {
		return render.ScheduleDTO{}, statusForError(err), err
	}
	report := validate.Validate(plan, s)
	return render.BuildDTO(plan, s, diag, report), http.StatusOK, nil
}

// statusForError maps a dispatch/resume error to an HTTP status per
// spec.md §6's two-way contract: 400 for a malformed plan, 500 for
// everything else (infeasible, solver bug, backend unavailable,
// timeout) — none of those are the caller's to correct by retrying
// with a different request body, so none get a distinct status.
func statusForError(err error) int {
	if errors.Is(err, schedule.ErrInvalidPlan) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeOrLog(w http.ResponseWriter, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorDTO{Error: message}
	if err != nil {
		resp.Error = message + ": " + err.Error()
	}
	writeJSON(w, status, resp)
}
