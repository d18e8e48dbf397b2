package handler

import (
	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ColleagueHandler struct {
	uc usecase.ColleagueUsecase
}

type findColleaguesRequest struct {
	Skills         []string `json:"skills"`
	Department     string   `json:"department"`
	OfficeLocation string   `json:"office_location"`
}

func NewColleagueHandler(uc usecase.ColleagueUsecase) *ColleagueHandler {
	return &ColleagueHandler{uc: uc}
}

func (h *ColleagueHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/find", h.Find)
}

func (h *ColleagueHandler) Find(c fiber.Ctx) error {
	var req findColleaguesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	res, err := h.uc.Find(c.Context(), middleware.Tenant(c, ""), usecase.ColleagueCriteria{
		Skills:         req.Skills,
		Department:     req.Department,
		OfficeLocation: req.OfficeLocation,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ColleagueFindResponse{
		Matches:    dto.NewProfileResponses(res.Matches),
		Suggestion: res.Suggestion,
	})
}
