package planner

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/domain"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/flow"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/pages"
)

const sessionIDKey = "planner_sid"

const validationMessage = "Please choose a travel style and a trip length between 1 and 5 days."

// preferencesForm is the single submission shape of the preference collector.
type preferencesForm struct {
	Style    string `form:"style" binding:"required,oneof=PHOTO FOODIE NATURE PET RELAX DIGITAL_NOMAD"`
	Duration int    `form:"duration" binding:"required,min=1,max=5"`
	Budget   string `form:"budget" binding:"omitempty,oneof=ECONOMY MID LUXURY"`
}

func (f preferencesForm) toPreferences() models.UserPreferences {
	budget := models.Budget(f.Budget)
	if budget == "" {
		budget = models.BudgetMid
	}
	return models.UserPreferences{
		Duration: f.Duration,
		Style:    models.TravelStyle(f.Style),
		Budget:   budget,
	}
}

// PlannerHandlers drives the three-screen flow over one session-scoped
// controller: HOME (form) -> ANALYZING (polled progress) -> RESULT.
type PlannerHandlers struct {
	*domain.BaseHandler
	registry *ControllerRegistry
}

func NewPlannerHandlers(base *domain.BaseHandler, registry *ControllerRegistry) *PlannerHandlers {
	return &PlannerHandlers{BaseHandler: base, registry: registry}
}

// controller resolves the flow controller for the current browser session,
// minting a session id on first contact.
func (h *PlannerHandlers) controller(c *gin.Context) *flow.Controller {
	session := sessions.Default(c)
	sid, _ := session.Get(sessionIDKey).(string)
	if sid == "" {
		sid = uuid.New().String()
		session.Set(sessionIDKey, sid)
		if err := session.Save(); err != nil {
			h.Logger.Warn("Failed to save session cookie", zap.Error(err))
		}
	}
	return h.registry.Get(sid)
}

// ShowHomePage renders the view matching the session's current state, so a
// reload lands the user back where they were.
func (h *PlannerHandlers) ShowHomePage(c *gin.Context) {
	snap := h.controller(c).Snapshot()
	switch snap.State {
	case flow.StateAnalyzing:
		h.RenderPage(c, "Jeonnam Stay - Analyzing", "Vlog Analysis", pages.AnalyzingPage(snap))
	case flow.StateResult:
		c.Redirect(http.StatusSeeOther, "/result")
	default:
		h.RenderPage(c, "Jeonnam Stay - Find your city", "Vlog Analysis", pages.HomePage(snap.Error))
	}
}

// StartAnalysis validates the submitted preferences and kicks off one
// generation cycle. Validation failures never reach the controller.
func (h *PlannerHandlers) StartAnalysis(c *gin.Context) {
	ctrl := h.controller(c)

	var form preferencesForm
	if err := c.ShouldBind(&form); err != nil {
		h.Logger.Warn("Rejected preference submission", zap.Error(err))
		h.RenderPage(c, "Jeonnam Stay - Find your city", "Vlog Analysis", pages.HomePage(validationMessage))
		return
	}

	prefs := form.toPreferences()
	if err := ctrl.StartAnalysis(c.Request.Context(), prefs); err != nil {
		// Either already analyzing or sitting on a result; send the user
		// to whichever view matches.
		h.Logger.Info("Analysis not started", zap.Error(err))
		if ctrl.Snapshot().State == flow.StateResult {
			c.Redirect(http.StatusSeeOther, "/result")
			return
		}
		h.RenderPage(c, "Jeonnam Stay - Analyzing", "Vlog Analysis", pages.AnalyzingPage(ctrl.Snapshot()))
		return
	}

	h.RenderPage(c, "Jeonnam Stay - Analyzing", "Vlog Analysis", pages.AnalyzingPage(ctrl.Snapshot()))
}

// AnalysisStatus is polled by the loader. While analyzing it returns the
// progress fragment; once the controller has moved on it redirects the
// poller to the matching view.
func (h *PlannerHandlers) AnalysisStatus(c *gin.Context) {
	snap := h.controller(c).Snapshot()
	switch snap.State {
	case flow.StateAnalyzing:
		h.Render(c, http.StatusOK, pages.ProgressFragment(snap))
	case flow.StateResult:
		c.Header("HX-Redirect", "/result")
		c.Status(http.StatusOK)
	default:
		// Generation failed; the home page carries the error banner.
		c.Header("HX-Redirect", "/")
		c.Status(http.StatusOK)
	}
}

// ShowResult renders the recommended route, or sends the user home when
// there is nothing to show.
func (h *PlannerHandlers) ShowResult(c *gin.Context) {
	snap := h.controller(c).Snapshot()
	if snap.State != flow.StateResult || snap.Route == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.RenderPage(c, "Jeonnam Stay - "+snap.Route.Title, "Vlog Analysis", pages.RoutePage(snap.Route))
}

// Reset discards the current route and error and returns to HOME.
func (h *PlannerHandlers) Reset(c *gin.Context) {
	h.controller(c).Reset()
	c.Redirect(http.StatusSeeOther, "/")
}
