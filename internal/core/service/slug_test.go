package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello World!", "hello-world"},
		{"  Leading and   trailing  ", "leading-and-trailing"},
		{"Go 1.22 Released", "go-122-released"},
		{"C'est déjà l'été", "cest-dj-lt"},
		{"already-slugged-title", "already-slugged-title"},
		{"---", ""},
		{"!!!", ""},
		{"MiXeD CaSe", "mixed-case"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
	}

	for _, tc := range cases {
		if got := slugify(tc.title); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugify_OutputCharset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]*$`)
	titles := []string{
		"Hello, World! How are you?",
		"100% Guaranteed (really)",
		"Ünïcödé & symbols #42",
	}
	for _, title := range titles {
		got := slugify(title)
		if !valid.MatchString(got) {
			t.Errorf("slugify(%q) = %q contains invalid characters", title, got)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	titles := []string{"Hello World!", "Go 1.22 Released", "MiXeD CaSe"}
	for _, title := range titles {
		once := slugify(title)
		if twice := slugify(once); twice != once {
			t.Errorf("slugify not idempotent for %q: %q -> %q", title, once, twice)
		}
	}
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	repo := newStubPostRepo()

	got, err := uniqueSlug(context.Background(), repo, "Hello World", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("expected %q, got %q", "hello-world", got)
	}
}

func TestUniqueSlug_SuffixesFromBase(t *testing.T) {
	repo := newStubPostRepo()
	repo.seed(domain.Post{Slug: "hello-world"})
	repo.seed(domain.Post{Slug: "hello-world-2"})

	got, err := uniqueSlug(context.Background(), repo, "Hello World!", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The suffix counts up from the base, never compounds: -2-3 is a defect.
	if got != "hello-world-3" {
		t.Errorf("expected %q, got %q", "hello-world-3", got)
	}
}

func TestUniqueSlug_ExcludesOwnRecord(t *testing.T) {
	repo := newStubPostRepo()
	mine := repo.seed(domain.Post{Slug: "hello-world"})

	got, err := uniqueSlug(context.Background(), repo, "Hello World", mine.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("a post must be able to keep its own slug, got %q", got)
	}
}
