package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type stubPostService struct {
	listFn    func(ctx context.Context, input ports.ListPostsInput) (*ports.PostPage, error)
	getFn     func(ctx context.Context, slug string) (*ports.PostView, error)
	createFn  func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error)
	updateFn  func(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error)
	deleteFn  func(ctx context.Context, actor ports.ActorInput, postID string) error
	featureFn func(ctx context.Context, actor ports.ActorInput, postID string) (*domain.Post, error)
}

func (s *stubPostService) List(ctx context.Context, input ports.ListPostsInput) (*ports.PostPage, error) {
	return s.listFn(ctx, input)
}
func (s *stubPostService) GetBySlug(ctx context.Context, slug string) (*ports.PostView, error) {
	return s.getFn(ctx, slug)
}
func (s *stubPostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, input)
}
func (s *stubPostService) Update(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, input)
}
func (s *stubPostService) Delete(ctx context.Context, actor ports.ActorInput, postID string) error {
	return s.deleteFn(ctx, actor, postID)
}
func (s *stubPostService) ToggleFeature(ctx context.Context, actor ports.ActorInput, postID string) (*domain.Post, error) {
	return s.featureFn(ctx, actor, postID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// authedContext builds a context as the Session middleware would leave it.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, clerkUserID, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxClerkUserID, clerkUserID)
	c.Set(middleware.CtxRole, role)
	return c
}

func TestPostHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listFn: func(_ context.Context, input ports.ListPostsInput) (*ports.PostPage, error) {
			if input.Category != "go" || input.Sort != "popular" {
				t.Fatalf("query not passed through: %+v", input)
			}
			return &ports.PostPage{
				Posts:   []ports.PostView{{Post: domain.Post{ID: "p1", Title: "T", Slug: "t"}}},
				HasMore: true,
			}, nil
		},
	}
	h := NewPostHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts?cat=go&sort=popular", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["hasMore"] != true {
		t.Errorf("hasMore missing: %+v", resp)
	}
}

func TestPostHandler_List_InvalidSort(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listFn: func(context.Context, ports.ListPostsInput) (*ports.PostPage, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts?sort=bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(_ context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			if input.ClerkUserID != "clerk_1" || input.Title != "Hello" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Post{ID: "p1", Title: input.Title, Slug: "hello", Category: "general"}, nil
		},
	}
	h := NewPostHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"Hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "clerk_1", "user")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["slug"] != "hello" {
		t.Errorf("slug missing: %+v", resp)
	}
}

func TestPostHandler_Create_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		createFn: func(context.Context, ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("service must not be called without identity")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"Hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no session keys set

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		createFn: func(context.Context, ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"content":"no title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "clerk_1", "user")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Update_ForbiddenPassesThrough(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		updateFn: func(context.Context, ports.UpdatePostInput) (*domain.Post, error) {
			return nil, domain.ErrForbidden
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/posts/p1", strings.NewReader(`{"content":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "clerk_1", "user")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	// Domain errors flow to the central error handler untouched.
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden passthrough, got %v", err)
	}
}

func TestPostHandler_Get_NotFoundPassesThrough(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		getFn: func(context.Context, string) (*ports.PostView, error) {
			return nil, domain.ErrPostNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/posts/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound passthrough, got %v", err)
	}
}

func TestPostHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		deleteFn: func(_ context.Context, actor ports.ActorInput, postID string) error {
			if actor.ClerkUserID != "clerk_1" || postID != "p1" {
				t.Fatalf("unexpected args: %+v %s", actor, postID)
			}
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/posts/p1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "clerk_1", "user")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPostHandler_Feature_NormalizesUnknownRole(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{
		featureFn: func(_ context.Context, actor ports.ActorInput, _ string) (*domain.Post, error) {
			if actor.Role != domain.RoleUser {
				t.Fatalf("unknown role must be normalized to user, got %q", actor.Role)
			}
			return nil, domain.ErrForbidden
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/posts/p1/feature", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "clerk_1", "moderator")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Feature(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
