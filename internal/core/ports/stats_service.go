package ports

import "context"

// OverallStats are the site-wide totals.
type OverallStats struct {
	TotalPosts    int64
	TotalComments int64
	TotalVisits   int64
}

// Contributor is one entry of the top-contributors ranking.
type Contributor struct {
	UserID   string
	Username string
	Img      string
	Score    int64
}

// CategoryCount is the number of posts in one category.
type CategoryCount struct {
	Category string
	Count    int64
}

// CategoryVisits is the summed visit count of one category.
type CategoryVisits struct {
	Category string
	Visits   int64
}

// ReadExtreme identifies the shortest or longest read on the site.
type ReadExtreme struct {
	Title string
	Slug  string
	Time  int
}

// ReadingStats summarizes estimated reading times across all posts.
// Shortest and Longest are nil when there are no posts.
type ReadingStats struct {
	ShortestRead       *ReadExtreme
	LongestRead        *ReadExtreme
	AverageReadingTime int
}

// SiteStats bundles every analytics block served by GET /stats.
type SiteStats struct {
	Overall             OverallStats
	TopContributors     []Contributor
	CategoryBreakdown   []CategoryCount
	CategoryPerformance []CategoryVisits
	ReadingStats        ReadingStats
}

// StatsService computes the analytics bundle in one pass per request.
type StatsService interface {
	Compute(ctx context.Context) (*SiteStats, error)
}
