package main

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/viditpawar/portfolio/internal/config"
	"github.com/viditpawar/portfolio/internal/content"
	"github.com/viditpawar/portfolio/internal/scrollspy"
	"github.com/viditpawar/portfolio/internal/visits"
)

type server struct {
	cfg     *config.Config
	page    *content.Page
	store   *visits.Store
	metrics *metrics
	admin   *adminAuth
	log     zerolog.Logger
	send    func(msg contactMessage) error
}

func newServer(cfg *config.Config, page *content.Page, store *visits.Store, log zerolog.Logger) *server {
	s := &server{
		cfg:     cfg,
		page:    page,
		store:   store,
		metrics: newMetrics(),
		admin:   newAdminAuth(cfg, log),
		log:     log,
	}
	s.send = s.sendContactEmail
	return s
}

// spyConfig is handed to the browser script so it scans the same sections
// with the same bias as the Go tracker.
type spyConfig struct {
	Sections []scrollspy.SectionID `json:"sections"`
	Bias     float64               `json:"bias"`
	Initial  scrollspy.SectionID   `json:"initial"`
	Beacon   string                `json:"beacon,omitempty"`
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")
	r.Static("/assets", "./assets")

	if s.store != nil {
		r.Use(s.visitorTracking())
	}

	r.GET("/", s.home)
	r.POST("/contact", s.contact)
	r.POST("/api/section-view", s.sectionView)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))

	s.setupAdminRoutes(r)
	return r
}

func (s *server) home(c *gin.Context) {
	initial := content.Hero
	if q := c.Query("section"); content.IsSection(q) {
		initial = scrollspy.SectionID(q)
	}

	cfg := spyConfig{
		Sections: content.SectionIDs(),
		Bias:     s.cfg.ScrollSpy.Bias,
		Initial:  initial,
	}
	if s.store != nil {
		cfg.Beacon = "/api/section-view"
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		s.log.Error().Err(err).Msg("encode scrollspy config")
		c.Status(http.StatusInternalServerError)
		return
	}

	s.metrics.pageViews.Inc()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"page":      s.page,
		"nav":       content.Nav,
		"active":    initial,
		"spyConfig": template.JS(raw),
	})
}

type sectionViewRequest struct {
	Section string `json:"section" binding:"required"`
}

func (s *server) sectionView(c *gin.Context) {
	var req sectionViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || !content.IsSection(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown section"})
		return
	}
	s.metrics.sectionViews.WithLabelValues(req.Section).Inc()

	if s.store != nil && c.GetHeader("DNT") != "1" {
		if err := s.store.RecordSectionView(c.Request.Context(), c.ClientIP(), req.Section); err != nil {
			s.log.Error().Err(err).Msg("record section view")
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Header("X-Request-ID", id)
		c.Next()

		ev := s.log.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = s.log.Error()
		}
		ev.Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

var untrackedPrefixes = []string{"/static/", "/images/", "/assets/", "/admin/", "/api/", "/favicon", "/privacy", "/metrics", "/healthz"}

// visitorTracking records page views. Static files, admin pages and
// visitors sending DNT are skipped.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua, full := c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.RequestURI()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, ip, ua, full); err != nil {
				s.log.Error().Err(err).Msg("record visit")
			}
		}()
		c.Next()
	}
}
