package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-analytics/internal/domain/run"
	"loan-analytics/internal/usecase/pipeline"
)

type RunHandler struct{ uc *pipeline.Usecase }

func NewRunHandler(uc *pipeline.Usecase) *RunHandler { return &RunHandler{uc: uc} }

// TriggerRun rebuilds the whole mart. A failed build still returns the run
// record so the caller can see what broke and when.
func (h *RunHandler) TriggerRun(c echo.Context) error {
	dto, err := h.uc.Run(c.Request().Context())
	if err != nil {
		if dto == nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto)
	}
	return c.JSON(http.StatusCreated, dto)
}

type getRunReq struct {
	RunID string `param:"run_id" validate:"required,hex32"`
}

func (h *RunHandler) GetRun(c echo.Context) error {
	var req getRunReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.GetRun(c.Request().Context(), req.RunID)
	if err != nil {
		if errors.Is(err, run.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GrainCheck reports months where the aggregate and the loan-grain table
// disagree on loan counts.
func (h *RunHandler) GrainCheck(c echo.Context) error {
	report, err := h.uc.CheckGrain(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}
