package handler

import (
	"errors"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/domain/profile"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type OrgChartHandler struct {
	uc usecase.OrgChartUsecase
}

func NewOrgChartHandler(uc usecase.OrgChartUsecase) *OrgChartHandler {
	return &OrgChartHandler{uc: uc}
}

func (h *OrgChartHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id", h.Chart)
}

func (h *OrgChartHandler) Chart(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	view, err := h.uc.Chart(c.Context(), middleware.Tenant(c, ""), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.OrgChartResponse{
		User:           dto.NewProfileResponse(view.User),
		ReportingChain: dto.NewProfileResponses(view.ReportingChain),
		DirectReports:  dto.NewProfileResponses(view.DirectReports),
	})
}
