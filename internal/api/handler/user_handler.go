package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// UserHandler covers the saved-posts feature.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type toggleSavedRequest struct {
	PostID string `json:"postId" validate:"required"`
}

type toggleSavedResponse struct {
	Saved bool `json:"saved"`
}

// SavedPosts handles GET /users/saved and returns the actor's saved posts.
//
// @Summary      List the authenticated user's saved posts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/saved [get]
func (h *UserHandler) SavedPosts(c echo.Context) error {
	clerkUserID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.SavedPosts(c.Request().Context(), clerkUserID)
	if err != nil {
		return err
	}

	out := make([]postResponse, len(views))
	for i, v := range views {
		out[i] = toPostResponse(v)
	}
	return c.JSON(http.StatusOK, out)
}

// ToggleSaved handles POST /users/saved: saves the post when absent from the
// actor's list, removes it when present.
//
// @Summary      Toggle a post in the authenticated user's saved list
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleSavedRequest  true  "Post to toggle"
// @Success      200   {object}  toggleSavedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/saved [post]
func (h *UserHandler) ToggleSaved(c echo.Context) error {
	clerkUserID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req toggleSavedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	saved, err := h.service.ToggleSavedPost(c.Request().Context(), clerkUserID, req.PostID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toggleSavedResponse{Saved: saved})
}
