package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        cat       query     string  false  "Category filter"
// @Param        author    query     string  false  "Author username filter"
// @Param        search    query     string  false  "Title search"
// @Param        sort      query     string  false  "newest | oldest | popular | trending"
// @Param        featured  query     bool    false  "Only featured posts"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listPostsResponse
// @Failure      400       {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var q listPostsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.List(c.Request().Context(), ports.ListPostsInput{
		Category: q.Category,
		Author:   q.Author,
		Search:   q.Search,
		Sort:     q.Sort,
		Featured: q.Featured,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(page))
}

// Get handles GET /posts/:slug. Each hit increments the visit counter.
//
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{slug} [get]
func (h *PostHandler) Get(c echo.Context) error {
	view, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*view))
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	clerkUserID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		ClerkUserID: clerkUserID,
		Role:        role,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Description: req.Description,
		Img:         req.Img,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(post.Category).Inc()
	return c.JSON(http.StatusCreated, toOwnPostResponse(post))
}

// Update handles PATCH /posts/:id. Owner or admin only; a title change
// regenerates the slug.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	clerkUserID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Update(c.Request().Context(), ports.UpdatePostInput{
		ClerkUserID: clerkUserID,
		Role:        role,
		PostID:      c.Param("id"),
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Description: req.Description,
		Img:         req.Img,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOwnPostResponse(post))
}

// Feature handles PATCH /posts/:id/feature. Admin only.
//
// @Summary      Toggle the featured flag on a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/feature [patch]
func (h *PostHandler) Feature(c echo.Context) error {
	clerkUserID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	post, err := h.service.ToggleFeature(c.Request().Context(), ports.ActorInput{
		ClerkUserID: clerkUserID,
		Role:        role,
	}, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOwnPostResponse(post))
}

// Delete handles DELETE /posts/:id. Owner or admin only.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  deletedResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
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

	return c.JSON(http.StatusOK, deletedResponse{Message: "post has been deleted"})
}
