package service

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	wordsPerMinute  = 225
	topContributors = 3

	scorePerPost            = 25
	scorePerVisit           = 1
	scorePerCommentReceived = 10
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// readingTime estimates the minutes needed to read content: markup stripped,
// whitespace-split word count divided by 225 wpm, rounded up. Empty content
// reads in 0 minutes.
func readingTime(content string) int {
	if content == "" {
		return 0
	}
	words := strings.Fields(markupPattern.ReplaceAllString(content, ""))
	return int(math.Ceil(float64(len(words)) / wordsPerMinute))
}

type StatsService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewStatsService(
	posts ports.PostRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{posts: posts, comments: comments, users: users, logger: logger}
}

// Compute builds the full analytics bundle in a single pass over the post
// projection plus two comment aggregates.
func (s *StatsService) Compute(ctx context.Context) (*ports.SiteStats, error) {
	rows, err := s.posts.ListStats(ctx)
	if err != nil {
		return nil, err
	}
	totalComments, err := s.comments.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	commentsPerPost, err := s.comments.CountByPost(ctx)
	if err != nil {
		return nil, err
	}

	type userAgg struct {
		postCount        int64
		visits           int64
		commentsReceived int64
	}

	var (
		totalVisits  int64
		totalMinutes int
		catCounts    = make(map[string]int64)
		catVisits    = make(map[string]int64)
		perUser      = make(map[string]*userAgg)
		ownerByPost  = make(map[string]string, len(rows))
		shortest     *ports.ReadExtreme
		longest      *ports.ReadExtreme
	)

	for _, row := range rows {
		totalVisits += row.Visit
		catCounts[row.Category]++
		catVisits[row.Category] += row.Visit
		ownerByPost[row.ID] = row.UserID

		agg := perUser[row.UserID]
		if agg == nil {
			agg = &userAgg{}
			perUser[row.UserID] = agg
		}
		agg.postCount++
		agg.visits += row.Visit

		minutes := readingTime(row.Content)
		totalMinutes += minutes
		// Strict comparisons: first-encountered wins ties in fetch order.
		if shortest == nil || minutes < shortest.Time {
			shortest = &ports.ReadExtreme{Title: row.Title, Slug: row.Slug, Time: minutes}
		}
		if longest == nil || minutes > longest.Time {
			longest = &ports.ReadExtreme{Title: row.Title, Slug: row.Slug, Time: minutes}
		}
	}

	// Comments received are attributed to the parent post's owner. Counts for
	// orphaned comments have no resolvable owner and are skipped.
	for postID, count := range commentsPerPost {
		owner, ok := ownerByPost[postID]
		if !ok {
			continue
		}
		perUser[owner].commentsReceived += count
	}

	contributors, err := s.rankContributors(ctx, func() []ports.Contributor {
		ranked := make([]ports.Contributor, 0, len(perUser))
		for userID, agg := range perUser {
			ranked = append(ranked, ports.Contributor{
				UserID: userID,
				Score: agg.postCount*scorePerPost +
					agg.visits*scorePerVisit +
					agg.commentsReceived*scorePerCommentReceived,
			})
		}
		return ranked
	}())
	if err != nil {
		return nil, err
	}

	average := 0
	if len(rows) > 0 {
		average = int(math.Round(float64(totalMinutes) / float64(len(rows))))
	}

	return &ports.SiteStats{
		Overall: ports.OverallStats{
			TotalPosts:    int64(len(rows)),
			TotalComments: totalComments,
			TotalVisits:   totalVisits,
		},
		TopContributors:     contributors,
		CategoryBreakdown:   sortedCounts(catCounts),
		CategoryPerformance: sortedVisits(catVisits),
		ReadingStats: ports.ReadingStats{
			ShortestRead:       shortest,
			LongestRead:        longest,
			AverageReadingTime: average,
		},
	}, nil
}

// rankContributors orders by score descending with user id ascending as the
// tie-break, truncates to the top three, and resolves profile details.
func (s *StatsService) rankContributors(ctx context.Context, ranked []ports.Contributor) ([]ports.Contributor, error) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	if len(ranked) > topContributors {
		ranked = ranked[:topContributors]
	}

	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.UserID
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		for i := range ranked {
			if ranked[i].UserID == u.ID {
				ranked[i].Username = u.Username
				ranked[i].Img = u.Img
			}
		}
	}
	return ranked, nil
}

func sortedCounts(m map[string]int64) []ports.CategoryCount {
	out := make([]ports.CategoryCount, 0, len(m))
	for cat, n := range m {
		out = append(out, ports.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func sortedVisits(m map[string]int64) []ports.CategoryVisits {
	out := make([]ports.CategoryVisits, 0, len(m))
	for cat, n := range m {
		out = append(out, ports.CategoryVisits{Category: cat, Visits: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
