// Package page renders the dashboard and portfolio views. The shell, kanban
// and gantt views are templ components; the remaining page bodies and the
// portfolio site are embedded html/template files adapted to templ.Component.
package page

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"clock": clockTime,
}

func clockTime(t time.Time) string { return t.Format("3:04 PM") }

// formatPct prints f with at most four decimals and no trailing zeros.
func formatPct(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}

func initial(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))

// render adapts a named template to templ.Component.
func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}
