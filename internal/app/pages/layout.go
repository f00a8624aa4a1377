package pages

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
)

// LayoutPage wraps page content in the full HTML document: header nav,
// footer, stylesheet and the HTMX/Leaflet scripts the flow depends on.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		b.WriteString("<meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(data.Title))
		b.WriteString("<link rel=\"stylesheet\" href=\"https://unpkg.com/leaflet@1.9.4/dist/leaflet.css\">")
		b.WriteString("<link rel=\"stylesheet\" href=\"/assets/css/app.css\">")
		b.WriteString("<script src=\"https://unpkg.com/htmx.org@1.9.12\" defer></script>")
		b.WriteString("<script src=\"https://unpkg.com/leaflet@1.9.4/dist/leaflet.js\" defer></script>")
		b.WriteString("<script src=\"/assets/js/map.js\" defer></script>")
		b.WriteString("</head><body class=\"bg-slate-50\">")

		b.WriteString("<nav class=\"site-nav\"><a href=\"/\" class=\"brand\">&#9875; Jeonnam Stay</a><div class=\"nav-links\">")
		for _, item := range data.Nav.Items {
			cls := "nav-link"
			if item.Name == data.ActiveNav {
				cls = "nav-link active"
			}
			fmt.Fprintf(&b, "<a href=\"%s\" class=\"%s\">%s</a>", item.URL, cls, html.EscapeString(item.Name))
		}
		b.WriteString("</div></nav>")

		b.WriteString("<main class=\"page-main\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if data.Content != nil {
			if err := data.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main><footer class=\"site-footer\"><p>Jeonnam Stay AI &middot; Powered by Gemini</p></footer></body></html>")
		return err
	})
}
