package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/flow"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

type styleOption struct {
	Value models.TravelStyle
	Label string
	Icon  string
}

// styleOptions drives the preference form's style grid.
var styleOptions = []styleOption{
	{models.StylePhoto, "Insta Hotspots", "&#128248;"},
	{models.StyleFoodie, "Food Trip", "&#129378;"},
	{models.StyleNature, "Nature & Healing", "&#9968;"},
	{models.StylePet, "With My Pet", "&#128054;"},
	{models.StyleRelax, "Slow Travel", "&#127969;"},
	{models.StyleDigitalNomad, "Workation", "&#128187;"},
}

// HomePage renders the landing view: hero, optional error banner and the
// preference form.
func HomePage(errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"hero\">")
		b.WriteString("<span class=\"hero-badge\">AI POWERED TRAVEL PLANNER</span>")
		b.WriteString("<h2 class=\"hero-title\">A trendy month-long stay<br>in <span class=\"accent\">Jeollanam-do</span></h2>")
		b.WriteString("<p class=\"hero-sub\">We analyse vlog and social trend data in real time to match you with the right Jeonnam city and route.</p>")
		if errMsg != "" {
			fmt.Fprintf(&b, "<div class=\"error-banner\" role=\"alert\">&#9888; %s</div>", html.EscapeString(errMsg))
		}
		b.WriteString("</section>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		return PreferenceForm().Render(ctx, w)
	})
}

// PreferenceForm is the single submission boundary for UserPreferences:
// style grid, duration range 1..5 and the defaulted budget.
func PreferenceForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<form class=\"pref-form\" method=\"post\" action=\"/analyze\">")
		b.WriteString("<h2 class=\"pref-title\">Let us find your Jeonnam</h2>")

		b.WriteString("<fieldset class=\"style-grid\"><legend>What kind of trip are you dreaming of?</legend>")
		for i, opt := range styleOptions {
			checked := ""
			if i == 0 {
				checked = " checked"
			}
			cls := twmerge.Merge("style-option", "rounded-3xl")
			fmt.Fprintf(&b,
				"<label class=\"%s\"><input type=\"radio\" name=\"style\" value=\"%s\"%s><span class=\"style-icon\">%s</span><span class=\"style-label\">%s</span></label>",
				cls, opt.Value, checked, opt.Icon, html.EscapeString(opt.Label))
		}
		b.WriteString("</fieldset>")

		b.WriteString("<div class=\"duration-row\"><label for=\"duration\">Trip length</label>")
		b.WriteString("<input type=\"range\" id=\"duration\" name=\"duration\" min=\"1\" max=\"5\" step=\"1\" value=\"3\">")
		b.WriteString("<div class=\"duration-hints\"><span>Day trip</span><span>5 days</span></div></div>")

		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"budget\" value=\"%s\">", models.BudgetMid)

		b.WriteString("<button type=\"submit\" class=\"submit-btn\">Find my best city &#10024;</button>")
		b.WriteString("<p class=\"pref-note\">The AI picks the best match among Yeosu, Suncheon, Mokpo and Damyang.</p>")
		b.WriteString("</form>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AnalyzingPage is the loader shell; its body polls /analyze/status and gets
// swapped with ProgressFragment until the controller leaves ANALYZING.
func AnalyzingPage(snap flow.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		header := "<section class=\"loader\"><div class=\"spinner\" aria-hidden=\"true\">&#9889;</div>" +
			"<h3 class=\"loader-title\">High-speed AI analysis</h3>" +
			"<div id=\"analysis-status\" hx-get=\"/analyze/status\" hx-trigger=\"every 300ms\" hx-swap=\"innerHTML\">"
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := ProgressFragment(snap).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div></section>")
		return err
	})
}

// ProgressFragment renders the progress bar, the current phase line and the
// rolling terminal log.
func ProgressFragment(snap flow.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<p class=\"loader-phase\">%s</p>", html.EscapeString(snap.Phase))
		fmt.Fprintf(&b, "<div class=\"progress-track\"><div class=\"progress-bar\" style=\"width: %d%%\"></div></div>", snap.Progress)
		b.WriteString("<div class=\"terminal\">")
		for _, line := range snap.Logs {
			fmt.Fprintf(&b, "<div class=\"terminal-line\"><span class=\"ok\">SUCCESS</span> %s</div>", html.EscapeString(line))
		}
		b.WriteString("<div class=\"terminal-line live\"><span class=\"busy\">PROCESS</span> Fetching trends...</div>")
		b.WriteString("</div>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RoutePage renders a full RecommendedRoute: header, map view and one
// section per day in array order. Rendering never mutates the route and is
// deterministic for a given route. A route with no renderable spots fails
// closed into the empty state instead of dereferencing an absent first spot.
func RoutePage(route *models.RecommendedRoute) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !route.HasRenderableSpots() {
			return NoItinerary().Render(ctx, w)
		}

		var b strings.Builder
		writeRouteHeader(&b, route)
		if err := writeMapView(&b, route); err != nil {
			return err
		}
		for i, day := range route.Days {
			writeDaySection(&b, day, i)
		}
		b.WriteString("<form method=\"post\" action=\"/reset\" class=\"reset-row\"><button type=\"submit\" class=\"reset-btn\">&#128260; Plan another trip</button></form>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// NoItinerary is the fail-closed result state for routes the renderer cannot
// safely display.
func NoItinerary() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			"<section class=\"empty-route\"><h2>No itinerary available</h2>"+
				"<p>The analysis did not return any visitable spots. Please try again.</p>"+
				"<form method=\"post\" action=\"/reset\"><button type=\"submit\" class=\"reset-btn\">Back to start</button></form></section>")
		return err
	})
}

func writeRouteHeader(b *strings.Builder, route *models.RecommendedRoute) {
	b.WriteString("<section class=\"route-hero\">")
	b.WriteString("<span class=\"route-badge\">AI Curation Complete</span>")
	fmt.Fprintf(b, "<h1 class=\"route-title\">%s</h1>", html.EscapeString(route.Title))
	b.WriteString("<div class=\"route-meta\">")
	fmt.Fprintf(b, "<span class=\"meta-city\">&#128205; %s</span>", html.EscapeString(route.SelectedCity))
	fmt.Fprintf(b, "<span class=\"meta-score\">&#10024; Trend %.0f%%</span>", route.TrendingScore)
	for _, tag := range route.Tags {
		fmt.Fprintf(b, "<span class=\"meta-tag\"># %s</span>", html.EscapeString(tag))
	}
	b.WriteString("</div>")
	fmt.Fprintf(b, "<p class=\"route-summary typewriter\">%s</p>", html.EscapeString(route.Summary))
	b.WriteString("</section>")
}

func writeMapView(b *strings.Builder, route *models.RecommendedRoute) error {
	payload, err := json.Marshal(BuildMapData(route))
	if err != nil {
		return err
	}
	b.WriteString("<div id=\"route-map\" class=\"route-map\"></div>")
	// json.Marshal escapes angle brackets, safe inside a script element.
	fmt.Fprintf(b, "<script type=\"application/json\" id=\"route-map-data\">%s</script>", payload)
	return nil
}

func writeDaySection(b *strings.Builder, day models.DailyPlan, dayIndex int) {
	fmt.Fprintf(b, "<section class=\"day-section\" data-day=\"%d\">", day.Day)
	fmt.Fprintf(b, "<div class=\"day-header\" style=\"border-color: %s\"><span class=\"day-no\">DAY %d</span><h3 class=\"day-theme\">%s</h3></div>",
		DayColor(dayIndex), day.Day, html.EscapeString(day.Theme))

	b.WriteString("<div class=\"day-timeline\">")
	for i, spot := range day.Spots {
		writeSpotCard(b, spot, i)
	}
	if day.AlternativeSpot != nil {
		writeAlternativeCard(b, *day.AlternativeSpot)
	}
	b.WriteString("</div></section>")
}

func writeSpotCard(b *strings.Builder, spot models.Spot, spotIndex int) {
	cls := twmerge.Merge("spot-card", "rounded-3xl")
	fmt.Fprintf(b, "<article class=\"%s\">", cls)
	if spotIndex > 0 && spot.TravelTimeFromPrevious != "" {
		fmt.Fprintf(b, "<span class=\"travel-badge\">&#128663; %s</span>", html.EscapeString(spot.TravelTimeFromPrevious))
	}
	if spot.Category != "" {
		fmt.Fprintf(b, "<span class=\"spot-category\">%s</span>", html.EscapeString(spot.Category))
	}
	if spot.NaverLink != "" {
		fmt.Fprintf(b, "<a class=\"spot-map-link\" href=\"%s\" target=\"_blank\" rel=\"noopener\">MAP &#8599;</a>", html.EscapeString(spot.NaverLink))
	}
	fmt.Fprintf(b, "<h4 class=\"spot-name\">%s</h4>", html.EscapeString(spot.Name))
	fmt.Fprintf(b, "<p class=\"spot-desc\">%s</p>", html.EscapeString(spot.Description))
	b.WriteString("</article>")
}

func writeAlternativeCard(b *strings.Builder, spot models.Spot) {
	b.WriteString("<aside class=\"alt-card\"><span class=\"alt-badge\">AI Trend Alternative</span>")
	fmt.Fprintf(b, "<h5 class=\"alt-name\">%s</h5>", html.EscapeString(spot.Name))
	fmt.Fprintf(b, "<p class=\"alt-desc\">%s</p>", html.EscapeString(spot.Description))
	if spot.NaverLink != "" {
		fmt.Fprintf(b, "<a class=\"alt-link\" href=\"%s\" target=\"_blank\" rel=\"noopener\">Worth a visit too &#8599;</a>", html.EscapeString(spot.NaverLink))
	}
	b.WriteString("</aside>")
}
