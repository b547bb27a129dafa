// Package api exposes the dashboard payloads over HTTP. Field names and
// casing are a compatibility surface for the frontend consumer.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/cache"
	"github.com/leapscholar/leappulse/internal/config"
	"github.com/leapscholar/leappulse/internal/models"
	"github.com/leapscholar/leappulse/internal/monitoring"
)

// Server serves the dashboard read endpoints and the forced-refresh
// trigger from the cache.
type Server struct {
	cache *cache.Service
	brand string
}

// NewHandler builds the routed, CORS-wrapped HTTP handler.
func NewHandler(cacheService *cache.Service, cfg *config.Config) http.Handler {
	s := &Server{cache: cacheService, brand: cfg.Brand}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/mentions", s.handleMentions).Methods("GET")
	router.HandleFunc("/api/sentiment", s.handleSentiment).Methods("GET")
	router.HandleFunc("/api/platforms", s.handlePlatforms).Methods("GET")
	router.HandleFunc("/api/topics", s.handleTopics).Methods("GET")
	router.HandleFunc("/api/metrics", s.handleMetrics).Methods("GET")
	router.HandleFunc("/api/trend", s.handleTrend).Methods("GET")
	router.HandleFunc("/api/all", s.handleAll).Methods("GET")
	router.HandleFunc("/api/refresh", s.handleRefresh).Methods("POST")

	// Browsers reject credentialed responses carrying a wildcard origin,
	// so credentials are only offered with a concrete origin list.
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !wildcardOrigins(cfg.CORSOrigins),
	}).Handler(router)
}

func wildcardOrigins(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return len(origins) == 0
}

type healthResponse struct {
	Status       string     `json:"status"`
	Brand        string     `json:"brand"`
	LastScraped  *time.Time `json:"last_scraped"`
	MentionCount int        `json:"mention_count"`
	SourceErrors []string   `json:"source_errors,omitempty"`
}

type allResponse struct {
	Mentions              []models.Mention         `json:"mentions"`
	SentimentDistribution []models.SentimentBucket `json:"sentiment_distribution"`
	PlatformBreakdown     []models.PlatformStat    `json:"platform_breakdown"`
	TrendingTopics        []models.TrendingTopic   `json:"trending_topics"`
	DashboardMetrics      models.DashboardMetrics  `json:"dashboard_metrics"`
	WeeklyTrend           []models.TrendPoint      `json:"weekly_trend"`
	LastScraped           *time.Time               `json:"last_scraped"`
	Brand                 string                   `json:"brand"`
}

type refreshResponse struct {
	Status       string `json:"status"`
	MentionCount int    `json:"mention_count"`
}

// handleHealth reports liveness without triggering a refresh.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := s.cache.Snapshot()

	resp := healthResponse{Status: "ok", Brand: s.brand}
	if snapshot != nil {
		resp.LastScraped = timePtr(snapshot.ScrapedAt)
		resp.MentionCount = len(snapshot.Mentions)
		resp.SourceErrors = snapshot.SourceErrors
	}

	writeJSON(w, resp)
}

func (s *Server) handleMentions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).Mentions)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).SentimentDistribution)
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).PlatformBreakdown)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).TrendingTopics)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).DashboardMetrics)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ensure(r).WeeklyTrend)
}

// handleAll returns the combined dashboard payload.
func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	snapshot := s.ensure(r)

	var lastScraped *time.Time
	if !snapshot.ScrapedAt.IsZero() {
		lastScraped = timePtr(snapshot.ScrapedAt)
	}

	writeJSON(w, allResponse{
		Mentions:              snapshot.Mentions,
		SentimentDistribution: snapshot.SentimentDistribution,
		PlatformBreakdown:     snapshot.PlatformBreakdown,
		TrendingTopics:        snapshot.TrendingTopics,
		DashboardMetrics:      snapshot.DashboardMetrics,
		WeeklyTrend:           snapshot.WeeklyTrend,
		LastScraped:           lastScraped,
		Brand:                 s.brand,
	})
}

// handleRefresh forces a synchronous refresh and reports the resulting
// batch size. Even a failed refresh degrades to "no change" rather than
// an error response.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot := s.cache.ForceRefresh(r.Context())

	count := 0
	if snapshot != nil {
		count = len(snapshot.Mentions)
	}

	writeJSON(w, refreshResponse{Status: "refreshed", MentionCount: count})
}

// ensure fetches the freshest snapshot, falling back to the empty-batch
// defaults while the very first refresh is still running.
func (s *Server) ensure(r *http.Request) *monitoring.Snapshot {
	if snapshot := s.cache.Ensure(r.Context()); snapshot != nil {
		return snapshot
	}
	return monitoring.EmptySnapshot()
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
