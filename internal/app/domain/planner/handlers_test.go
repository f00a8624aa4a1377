package planner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/domain"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/flow"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

type stubGenerator struct {
	route *models.RecommendedRoute
	err   error
	delay time.Duration
}

func (g *stubGenerator) Generate(ctx context.Context, prefs models.UserPreferences) (*models.RecommendedRoute, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.route, g.err
}

func yeosuRoute() *models.RecommendedRoute {
	return &models.RecommendedRoute{
		Title:        "A bright day in Yeosu",
		Summary:      "Sea views and night markets.",
		SelectedCity: "Yeosu",
		Days: []models.DailyPlan{
			{Day: 1, Theme: "Coastline", Spots: []models.Spot{
				{Name: "Odongdo Island", Description: "Camellia paths.", Lat: 34.744, Lng: 127.768, NaverLink: "https://map.naver.com/p/search/odongdo"},
			}},
		},
	}
}

func newTestRouter(t *testing.T, gen flow.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("jeonnam_session", store))

	h := NewPlannerHandlers(domain.NewBaseHandler(logger), NewControllerRegistry(gen, logger))
	r.GET("/", h.ShowHomePage)
	r.POST("/analyze", h.StartAnalysis)
	r.GET("/analyze/status", h.AnalysisStatus)
	r.GET("/result", h.ShowResult)
	r.POST("/reset", h.Reset)
	return r
}

// browser replays session cookies across requests like a real client.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, router *gin.Engine) *browser {
	return &browser{t: t, router: router}
}

func (b *browser) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, false)
}

func (b *browser) poll(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, true)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form, false)
}

func parseDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func validForm() url.Values {
	return url.Values{
		"style":    {string(models.StyleNature)},
		"duration": {"3"},
		"budget":   {string(models.BudgetMid)},
	}
}

func TestHomePageShowsPreferenceForm(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	w := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("form.pref-form").Length())
	assert.Equal(t, 6, doc.Find("input[name=style]").Length())
	assert.Equal(t, 0, doc.Find(".error-banner").Length())
}

func TestStartAnalysisRejectsInvalidPreferences(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	for _, form := range []url.Values{
		{"style": {"SHOPPING"}, "duration": {"3"}},
		{"style": {string(models.StylePhoto)}, "duration": {"0"}},
		{"style": {string(models.StylePhoto)}, "duration": {"6"}},
		{"duration": {"3"}},
	} {
		w := b.post("/analyze", form)
		require.Equal(t, http.StatusOK, w.Code)
		doc := parseDoc(t, w.Body.String())
		assert.Equal(t, 1, doc.Find(".error-banner").Length(), "form %v must be rejected", form)
		assert.Equal(t, 1, doc.Find("form.pref-form").Length())
	}
}

func TestStartAnalysisDefaultsBudget(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	form := validForm()
	form.Del("budget")
	w := b.post("/analyze", form)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("#analysis-status").Length())
}

func TestFullFlowReachesResult(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	w := b.post("/analyze", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDoc(t, w.Body.String())
	require.Equal(t, 1, doc.Find("#analysis-status").Length())

	// Poll like the loader does until the status handler redirects.
	require.Eventually(t, func() bool {
		return b.poll("/analyze/status").Header().Get("HX-Redirect") == "/result"
	}, 5*time.Second, 50*time.Millisecond, "status poll should redirect to the result")

	w = b.get("/result")
	require.Equal(t, http.StatusOK, w.Code)
	doc = parseDoc(t, w.Body.String())
	assert.Equal(t, "A bright day in Yeosu", doc.Find(".route-title").Text())
	assert.Equal(t, 1, doc.Find(".day-section").Length())
}

func TestStatusWhileAnalyzingReturnsProgressFragment(t *testing.T) {
	gen := &stubGenerator{route: yeosuRoute(), delay: 5 * time.Second}
	b := newBrowser(t, newTestRouter(t, gen))

	w := b.post("/analyze", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	w = b.poll("/analyze/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("HX-Redirect"))
	doc := parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find(".progress-bar").Length())
	assert.NotEmpty(t, doc.Find(".loader-phase").Text())
}

func TestGenerationFailureReturnsHomeWithBanner(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable: quota exceeded")}
	b := newBrowser(t, newTestRouter(t, gen))

	w := b.post("/analyze", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool {
		return b.poll("/analyze/status").Header().Get("HX-Redirect") == "/"
	}, 5*time.Second, 50*time.Millisecond, "status poll should send the user home on failure")

	w = b.get("/")
	doc := parseDoc(t, w.Body.String())
	banner := doc.Find(".error-banner").Text()
	assert.NotEmpty(t, banner)
	assert.NotContains(t, banner, "quota", "internal diagnostics stay out of the page")
	assert.Equal(t, 1, doc.Find("form.pref-form").Length())
}

func TestResultRedirectsHomeWithoutRoute(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	w := b.get("/result")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestResetReturnsToHome(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute()}))

	b.post("/analyze", validForm())
	require.Eventually(t, func() bool {
		return b.poll("/analyze/status").Header().Get("HX-Redirect") == "/result"
	}, 5*time.Second, 50*time.Millisecond)

	w := b.post("/reset", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.get("/")
	doc := parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("form.pref-form").Length())
	assert.Equal(t, 0, doc.Find(".error-banner").Length())

	w = b.get("/result")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	router := newTestRouter(t, &stubGenerator{route: yeosuRoute(), delay: 5 * time.Second})
	first := newBrowser(t, router)
	second := newBrowser(t, router)

	w := first.post("/analyze", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDoc(t, w.Body.String())
	require.Equal(t, 1, doc.Find("#analysis-status").Length())

	// The second browser still sees its own idle HOME.
	w = second.get("/")
	doc = parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("form.pref-form").Length())
	assert.Equal(t, 0, doc.Find("#analysis-status").Length())
}

func TestHomeWhileAnalyzingShowsLoader(t *testing.T) {
	b := newBrowser(t, newTestRouter(t, &stubGenerator{route: yeosuRoute(), delay: 5 * time.Second}))

	b.post("/analyze", validForm())

	w := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDoc(t, w.Body.String())
	assert.Equal(t, 1, doc.Find("#analysis-status").Length())
	assert.Equal(t, 0, doc.Find("form.pref-form").Length())
}
