package handler

import (
	"errors"
	"strconv"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/domain/bookmark"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/tenant"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookmarkHandler struct {
	uc usecase.BookmarkUsecase
}

type addBookmarkRequest struct {
	PostID     int64             `json:"post_id"`
	UserID     *uuid.UUID        `json:"user_id"`
	Collection string            `json:"collection"`
	Notes      string            `json:"notes"`
	Meta       map[string]string `json:"meta"`
}

type createCollectionRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func NewBookmarkHandler(uc usecase.BookmarkUsecase) *BookmarkHandler {
	return &BookmarkHandler{uc: uc}
}

func (h *BookmarkHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Delete("/:postID", h.Remove)
	r.Get("/:postID/status", h.Status)
}

func (h *BookmarkHandler) RegisterCollectionRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.CreateCollection)
}

// requestUser resolves the acting user: the optional user_id override
// falls back to the identity header.
func requestUser(c fiber.Ctx, override *uuid.UUID) (uuid.UUID, error) {
	if override != nil && *override != uuid.Nil {
		return *override, nil
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
		}
		return id, nil
	}
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Missing user identity", nil, nil)
	}
	return id, nil
}

func requestScope(c fiber.Ctx) *tenant.Scope {
	return tenant.NewScope(middleware.Tenant(c, ""))
}

func (h *BookmarkHandler) List(c fiber.Ctx) error {
	userID, err := requestUser(c, nil)
	if err != nil {
		return err
	}
	scope := requestScope(c)

	f := usecase.BookmarkFilter{
		Collection: c.Query("collection"),
		PostType:   c.Query("post_type"),
		Limit:      queryInt(c, "limit", 0),
		Offset:     queryInt(c, "offset", 0),
	}

	list, err := h.uc.ListWithPosts(c.Context(), scope, userID, f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	cols, err := h.uc.Collections(c.Context(), scope, userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	view := dto.BookmarksViewResponse{
		Bookmarks:   make([]dto.BookmarkResponse, 0, len(list)),
		Collections: make([]dto.CollectionResponse, 0, len(cols)),
	}
	for _, eb := range list {
		view.Bookmarks = append(view.Bookmarks, dto.NewEnrichedBookmarkResponse(eb))
	}
	for _, col := range cols {
		view.Collections = append(view.Collections, dto.NewCollectionResponse(col))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *BookmarkHandler) Add(c fiber.Ctx) error {
	var req addBookmarkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.PostID <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid post id", nil, nil)
	}

	userID, err := requestUser(c, req.UserID)
	if err != nil {
		return err
	}

	meta := req.Meta
	if req.Notes != "" {
		if meta == nil {
			meta = map[string]string{}
		}
		meta["notes"] = req.Notes
	}

	bm, err := h.uc.Add(c.Context(), requestScope(c), userID, usecase.AddBookmarkInput{
		PostID:     req.PostID,
		Collection: req.Collection,
		Meta:       meta,
	})
	if err != nil {
		if errors.Is(err, bookmark.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Post not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookmarkResponse(bm))
}

func (h *BookmarkHandler) Remove(c fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("postID"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid post id", nil, err)
	}

	userID, err := requestUser(c, nil)
	if err != nil {
		return err
	}

	removed, err := h.uc.Remove(c.Context(), requestScope(c), userID, postID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"removed": removed})
}

func (h *BookmarkHandler) Status(c fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("postID"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid post id", nil, err)
	}

	userID, err := requestUser(c, nil)
	if err != nil {
		return err
	}

	bookmarked, err := h.uc.IsBookmarked(c.Context(), requestScope(c), userID, postID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"bookmarked": bookmarked})
}

func (h *BookmarkHandler) CreateCollection(c fiber.Ctx) error {
	var req createCollectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	userID, err := requestUser(c, nil)
	if err != nil {
		return err
	}

	col, created, err := h.uc.CreateCollection(c.Context(), requestScope(c), userID, req.Name, req.Icon, req.Color)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	if !created {
		return response.Error(c, fiber.StatusConflict, "Collection name is empty or already exists", fiber.Map{"created": false})
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewCollectionResponse(col))
}
