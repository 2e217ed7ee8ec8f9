package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type addCommentRequest struct {
	Desc string `json:"desc" validate:"required,max=2000"`
}

type commentResponse struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post"`
	Desc      string         `json:"desc"`
	CreatedAt time.Time      `json:"createdAt"`
	User      authorResponse `json:"user"`
}

func toCommentResponse(v ports.CommentView) commentResponse {
	return commentResponse{
		ID:        v.Comment.ID,
		PostID:    v.Comment.PostID,
		Desc:      v.Comment.Desc,
		CreatedAt: v.Comment.CreatedAt.UTC(),
		User: authorResponse{
			Username:    v.Author.Username,
			Img:         v.Author.Img,
			ClerkUserID: v.Author.ClerkUserID,
		},
	}
}

// ListByPost handles GET /comments/:postId, newest first.
//
// @Summary      List comments on a post
// @Tags         comments
// @Produce      json
// @Param        postId  path      string  true  "Post id"
// @Success      200     {array}   commentResponse
// @Failure      404     {object}  errorResponse
// @Router       /comments/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	views, err := h.service.ListByPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}

	out := make([]commentResponse, len(views))
	for i, v := range views {
		out[i] = toCommentResponse(v)
	}
	return c.JSON(http.StatusOK, out)
}

// Add handles POST /comments/:postId.
//
// @Summary      Add a comment to a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string             true  "Post id"
// @Param        body    body      addCommentRequest  true  "Comment body"
// @Success      201     {object}  commentResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /comments/{postId} [post]
func (h *CommentHandler) Add(c echo.Context) error {
	clerkUserID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Add(c.Request().Context(), ports.AddCommentInput{
		ClerkUserID: clerkUserID,
		PostID:      c.Param("postId"),
		Desc:        req.Desc,
	})
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCommentResponse(ports.CommentView{Comment: *created}))
}

// Delete handles DELETE /comments/:id. Allowed for admins, the comment
// author, and the owner of the post the comment belongs to.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Comment id"
// @Success      200  {object}  deletedResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	clerkUserID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ports.ActorInput{
		ClerkUserID: clerkUserID,
		Role:        role,
	}, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletedResponse{Message: "comment has been deleted"})
}
