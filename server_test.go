package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viditpawar/portfolio/internal/config"
	"github.com/viditpawar/portfolio/internal/content"
	"github.com/viditpawar/portfolio/internal/visits"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, tracking bool) (*server, *gin.Engine) {
	t.Helper()
	cfg := &config.Config{Mode: gin.TestMode}
	cfg.ScrollSpy.Bias = 100
	cfg.Admin.Username = "owner"
	cfg.Admin.Password = "s3cret"
	cfg.Tracking.Enabled = tracking
	cfg.Tracking.RetentionMonths = 12

	page, err := content.Load(2025)
	require.NoError(t, err)

	var store *visits.Store
	if tracking {
		store, err = visits.Open(context.Background(), ":memory:", zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}
	s := newServer(cfg, page, store, zerolog.Nop())
	return s, s.routes()
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomeRendersSectionsAndNav(t *testing.T) {
	_, r := newTestServer(t, false)
	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, id := range content.SectionIDs() {
		assert.Contains(t, body, `id="`+string(id)+`"`)
	}
	assert.Contains(t, body, `"sections":["hero","about","skills","experience","projects","certifications","contact"]`)
	assert.Contains(t, body, `"bias":100`)
	assert.Contains(t, body, `"initial":"hero"`)
	assert.NotContains(t, body, `"beacon"`)
	assert.NotContains(t, body, "is-active", "hero has no nav label")
	assert.Contains(t, body, "Blue Cross Blue Shield of Arizona")
	assert.Contains(t, body, "HackerRank SQL (Intermediate)")
}

func TestHomeDeepLink(t *testing.T) {
	_, r := newTestServer(t, true)

	w := do(r, httptest.NewRequest(http.MethodGet, "/?section=projects", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"initial":"projects"`)
	assert.Contains(t, body, `"beacon":"/api/section-view"`)
	assert.Equal(t, 1, strings.Count(body, "is-active"))
	assert.Regexp(t, `data-nav-item="projects"\s+class="[^"]*is-active`, body)

	w = do(r, httptest.NewRequest(http.MethodGet, "/?section=blog", nil))
	assert.Contains(t, w.Body.String(), `"initial":"hero"`)
}

func TestSectionView(t *testing.T) {
	s, r := newTestServer(t, true)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/section-view", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return do(r, req)
	}

	assert.Equal(t, http.StatusNoContent, post(`{"section":"skills"}`).Code)
	assert.Equal(t, http.StatusNoContent, post(`{"section":"skills"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"section":"blog"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).Code)

	views, err := s.store.SectionViews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []visits.SectionCount{{Section: "skills", Views: 2}}, views)

	w := do(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `portfolio_section_views_total{section="skills"} 2`)
}

func TestVisitorTrackingRespectsDNT(t *testing.T) {
	s, r := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	do(r, req)
	do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/?section=about", nil))

	require.Eventually(t, func() bool {
		recent, err := s.store.Recent(context.Background(), 10)
		return err == nil && len(recent) == 1
	}, 2*time.Second, 20*time.Millisecond)

	recent, err := s.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "/?section=about", recent[0].Path)
}

func TestContact(t *testing.T) {
	s, r := newTestServer(t, false)
	var sent []contactMessage
	s.send = func(msg contactMessage) error {
		sent = append(sent, msg)
		return nil
	}

	form := url.Values{
		"fullName": {"Ada <b>Lovelace</b>\r\nBcc: x@example.com"},
		"email":    {"ada@example.com"},
		"message":  {"Hello & <script>alert(1)</script>welcome"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message!")
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0].Name, "Ada Lovelace"))
	assert.NotContains(t, sent[0].Name, "\n")
	assert.NotContains(t, sent[0].Name, "\r")
	assert.Equal(t, "Hello & welcome", sent[0].Message)
}

func TestContactErrors(t *testing.T) {
	s, r := newTestServer(t, false)
	s.send = func(contactMessage) error { return errors.New("smtp down") }

	submit := func(form url.Values) string {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return do(r, req).Body.String()
	}

	ok := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}}
	assert.Contains(t, submit(ok), "error sending your message")

	bad := url.Values{"fullName": {"Ada"}, "email": {"not-an-address"}, "message": {"hi"}}
	assert.Contains(t, submit(bad), "error sending your message")

	w := do(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `portfolio_contact_submissions_total{result="failed"} 1`)
	assert.Contains(t, body, `portfolio_contact_submissions_total{result="invalid"} 1`)
}

func TestSendContactEmailRequiresCredentials(t *testing.T) {
	s, _ := newTestServer(t, false)
	err := s.sendContactEmail(contactMessage{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	assert.ErrorIs(t, err, errSMTPNotConfigured)
}

func TestAdminFlow(t *testing.T) {
	s, r := newTestServer(t, true)
	require.NoError(t, s.store.RecordSectionView(context.Background(), "10.0.0.1", "about"))

	w := do(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	login := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return do(r, req)
	}
	assert.Equal(t, http.StatusUnauthorized, login("owner", "wrong").Code)

	w = login("owner", "s3cret")
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookies[0])
	w = do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats visits.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, []visits.SectionCount{{Section: "about", Views: 1}}, stats.SectionViews)

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookies[0])
	w = do(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<td>about</td><td>1</td>")

	req = httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)
	req.AddCookie(cookies[0])
	w = do(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":0}`, w.Body.String())
}

func TestAdminDisabledWithoutCredentials(t *testing.T) {
	cfg := &config.Config{Mode: gin.ReleaseMode}
	a := newAdminAuth(cfg, zerolog.Nop())
	assert.False(t, a.enabled())
	assert.False(t, a.check("", ""))
	assert.False(t, a.check("admin", "admin123"))

	cfg.Mode = gin.DebugMode
	a = newAdminAuth(cfg, zerolog.Nop())
	assert.True(t, a.check("admin", "admin123"))
}

func TestPrivacyAndHealth(t *testing.T) {
	_, r := newTestServer(t, true)
	w := do(r, httptest.NewRequest(http.MethodGet, "/privacy", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "older than 12 months")

	w = do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestComposeContactEmail(t *testing.T) {
	sent := time.Date(2025, 6, 10, 15, 4, 5, 0, time.UTC)
	raw, err := composeContactEmail("relay@example.com", "owner@example.com", contactMessage{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "line one\r\nline two",
	}, sent)
	require.NoError(t, err)

	out := string(raw)
	head, body, found := strings.Cut(out, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, head, "From: relay@example.com\r\n")
	assert.Contains(t, head, "To: owner@example.com\r\n")
	assert.Contains(t, head, `Reply-To: "Ada Lovelace" <ada@example.com>`)
	assert.Contains(t, head, "Subject: Message from Ada Lovelace\r\n")
	assert.Contains(t, head, "Date: Tue, 10 Jun 2025 15:04:05 +0000")
	assert.Contains(t, body, "Ada Lovelace <ada@example.com> wrote")
	assert.Contains(t, body, "line one\r\nline two\r\n")
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"), "only CRLF line endings")

	raw, err = composeContactEmail("relay@example.com", "owner@example.com", contactMessage{
		Name: "Zoë", Email: "zoe@example.com", Message: "hi",
	}, sent)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: =?utf-8?q?")
}

func TestReleaseModeFromGinModeRejectsDevAdmin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GIN_MODE", gin.ReleaseMode)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, gin.ReleaseMode, cfg.Mode)

	a := newAdminAuth(cfg, zerolog.Nop())
	assert.False(t, a.check("admin", "admin123"))
}

func TestNewLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	newLogger("warn", gin.ReleaseMode)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	newLogger("nonsense", gin.ReleaseMode)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	newLogger("", gin.DebugMode)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestScrollSpyScriptSurvivesPageCache(t *testing.T) {
	_, r := newTestServer(t, false)
	w := do(r, httptest.NewRequest(http.MethodGet, "/static/scrollspy.js", nil))
	require.Equal(t, http.StatusOK, w.Code)

	js := w.Body.String()
	assert.Contains(t, js, `window.addEventListener("pagehide", unmount)`)
	assert.Regexp(t, `(?s)addEventListener\("pageshow".*persisted.*mount\(\);\s*recompute\(\);`, js)
}
