package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/moderation"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// ReportHandler handles content reports and the admin moderation queue
type ReportHandler struct {
	reportRepository repositories.ReportRepository
	userRepository   repositories.UserRepository
	enricher         *moderation.Enricher
}

func NewReportHandler(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository, enricher *moderation.Enricher) *ReportHandler {
	return &ReportHandler{
		reportRepository: reportRepo,
		userRepository:   userRepo,
		enricher:         enricher,
	}
}

func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.ReportContent)
	g.GET("/reports", h.GetReports)
	g.GET("/reports/stats", h.GetStats)
	g.PUT("/reports/:id/resolve", h.ResolveReport)
	g.DELETE("/reports/:id", h.DeleteReport)
}

func (h *ReportHandler) requireModerator(c echo.Context) error {
	actor, err := currentActor(c, h.userRepository)
	if err != nil {
		return err
	}
	if !policy.CanModerate(actor) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	return nil
}

// ReportContent files a report; every field is validated before the write.
func (h *ReportHandler) ReportContent(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err = h.reportRepository.ReportContent(c.Request().Context(), currentUserID, req.ContentType, req.ContentID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmptyReason),
			errors.Is(err, repositories.ErrInvalidContentType),
			errors.Is(err, repositories.ErrInvalidContentID):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return internalError(c, err, "report content")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Report submitted"})
}

// GetReports lists reports with previews, optionally filtered by ?resolved=
func (h *ReportHandler) GetReports(c echo.Context) error {
	if err := h.requireModerator(c); err != nil {
		return err
	}

	var resolved *bool
	if raw := c.QueryParam("resolved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "resolved must be true or false")
		}
		resolved = &v
	}

	ctx := c.Request().Context()
	reports, err := h.reportRepository.GetReports(ctx, resolved)
	if err != nil {
		return internalError(c, err, "list reports")
	}
	views := h.enricher.Enrich(ctx, reports)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reports": views, "count": len(views)})
}

func (h *ReportHandler) GetStats(c echo.Context) error {
	if err := h.requireModerator(c); err != nil {
		return err
	}
	reports, err := h.reportRepository.GetReports(c.Request().Context(), nil)
	if err != nil {
		return internalError(c, err, "report stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": moderation.Summarize(reports)})
}

func (h *ReportHandler) ResolveReport(c echo.Context) error {
	if err := h.requireModerator(c); err != nil {
		return err
	}
	id, err := parseID(c, "id", "report")
	if err != nil {
		return err
	}
	var req models.ResolveReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.IsResolved == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isResolved is required")
	}

	found, err := h.reportRepository.ResolveReport(c.Request().Context(), id, *req.IsResolved)
	if err != nil {
		return internalError(c, err, "resolve report")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Report updated"})
}

// DeleteReport lets the reporter withdraw a report, or an admin discard it.
func (h *ReportHandler) DeleteReport(c echo.Context) error {
	actor, err := currentActor(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "report")
	if err != nil {
		return err
	}

	res, err := h.reportRepository.DeleteReport(c.Request().Context(), id, actor)
	if err != nil {
		return internalError(c, err, "delete report")
	}
	return deleteResponse(c, res, "Report")
}
