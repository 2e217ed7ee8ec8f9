package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// StatsHandler serves the site analytics bundle.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type overallStatsResponse struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalComments int64 `json:"totalComments"`
	TotalVisits   int64 `json:"totalVisits"`
}

type contributorResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Img      string `json:"img,omitempty"`
	Score    int64  `json:"score"`
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type categoryVisitsResponse struct {
	Category string `json:"category"`
	Visits   int64  `json:"visits"`
}

type readExtremeResponse struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Time  int    `json:"time"`
}

type readingStatsResponse struct {
	ShortestRead       *readExtremeResponse `json:"shortestRead"`
	LongestRead        *readExtremeResponse `json:"longestRead"`
	AverageReadingTime int                  `json:"averageReadingTime"`
}

type siteStatsResponse struct {
	Overall             overallStatsResponse     `json:"overall"`
	TopContributors     []contributorResponse    `json:"topContributors"`
	CategoryBreakdown   []categoryCountResponse  `json:"categoryBreakdown"`
	CategoryPerformance []categoryVisitsResponse `json:"categoryPerformance"`
	ReadingStats        readingStatsResponse     `json:"readingStats"`
}

func toStatsResponse(s *ports.SiteStats) siteStatsResponse {
	out := siteStatsResponse{
		Overall: overallStatsResponse{
			TotalPosts:    s.Overall.TotalPosts,
			TotalComments: s.Overall.TotalComments,
			TotalVisits:   s.Overall.TotalVisits,
		},
		TopContributors:     make([]contributorResponse, len(s.TopContributors)),
		CategoryBreakdown:   make([]categoryCountResponse, len(s.CategoryBreakdown)),
		CategoryPerformance: make([]categoryVisitsResponse, len(s.CategoryPerformance)),
		ReadingStats: readingStatsResponse{
			AverageReadingTime: s.ReadingStats.AverageReadingTime,
		},
	}
	for i, c := range s.TopContributors {
		out.TopContributors[i] = contributorResponse{
			UserID:   c.UserID,
			Username: c.Username,
			Img:      c.Img,
			Score:    c.Score,
		}
	}
	for i, c := range s.CategoryBreakdown {
		out.CategoryBreakdown[i] = categoryCountResponse{Category: c.Category, Count: c.Count}
	}
	for i, c := range s.CategoryPerformance {
		out.CategoryPerformance[i] = categoryVisitsResponse{Category: c.Category, Visits: c.Visits}
	}
	if e := s.ReadingStats.ShortestRead; e != nil {
		out.ReadingStats.ShortestRead = &readExtremeResponse{Title: e.Title, Slug: e.Slug, Time: e.Time}
	}
	if e := s.ReadingStats.LongestRead; e != nil {
		out.ReadingStats.LongestRead = &readExtremeResponse{Title: e.Title, Slug: e.Slug, Time: e.Time}
	}
	return out
}

// Get handles GET /stats. The bundle is computed on demand.
//
// @Summary      Site-wide analytics
// @Tags         stats
// @Produce      json
// @Success      200  {object}  siteStatsResponse
// @Router       /stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.StatsComputeDuration)
	stats, err := h.service.Compute(c.Request().Context())
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
