package handler

import (
	"errors"
	"strconv"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/domain/profile"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DirectoryHandler struct {
	uc usecase.DirectoryUsecase
}

type updateProfileRequest struct {
	Title              *string  `json:"title"`
	AvatarURL          *string  `json:"avatar_url"`
	Department         *string  `json:"department"`
	ReportsTo          *string  `json:"reports_to"`
	OfficeLocation     *string  `json:"office_location"`
	Skills             []string `json:"skills"`
	AvailabilityStatus *string  `json:"availability_status"`
	Visible            *bool    `json:"visible"`
}

func NewDirectoryHandler(uc usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func (h *DirectoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/departments", h.Departments)
	r.Get("/offices", h.Offices)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
}

func (h *DirectoryHandler) List(c fiber.Ctx) error {
	f := usecase.DirectoryFilter{
		Search:         c.Query("search"),
		Department:     c.Query("department"),
		OfficeLocation: c.Query("office_location"),
		IncludeHidden:  c.Query("include_hidden") == "true",
		Limit:          queryInt(c, "limit", 0),
		Offset:         queryInt(c, "offset", 0),
	}

	page, err := h.uc.List(c.Context(), middleware.Tenant(c, ""), f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DirectoryListResponse{
		Total:   page.Total,
		Results: dto.NewProfileResponses(page.Results),
	})
}

func (h *DirectoryHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	rec, err := h.uc.Get(c.Context(), middleware.Tenant(c, ""), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(rec))
}

func (h *DirectoryHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	rec, err := h.uc.Update(c.Context(), middleware.Tenant(c, ""), id, usecase.UpdateProfileInput{
		Title:              req.Title,
		AvatarURL:          req.AvatarURL,
		Department:         req.Department,
		ReportsTo:          req.ReportsTo,
		OfficeLocation:     req.OfficeLocation,
		Skills:             req.Skills,
		AvailabilityStatus: req.AvailabilityStatus,
		Visible:            req.Visible,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid reports_to id", nil, err)
		}
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(rec))
}

func (h *DirectoryHandler) Departments(c fiber.Ctx) error {
	values, err := h.uc.Departments(c.Context(), middleware.Tenant(c, ""))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, values)
}

func (h *DirectoryHandler) Offices(c fiber.Ctx) error {
	values, err := h.uc.OfficeLocations(c.Context(), middleware.Tenant(c, ""))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, values)
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
