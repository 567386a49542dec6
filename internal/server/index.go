package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
)

var indexTmpl = template.Must(template.New("routes").Funcs(template.FuncMap{
	"lower": strings.ToLower,
}).Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Routes · PMT</title><link rel="stylesheet" href="/static/css/app.css"></head>
<body class="routes">
<main class="content">
<h1 class="page-title">Routes</h1>
<table class="routes__table">
<thead><tr><th>Method</th><th>Pattern</th><th>Summary</th><th>Example</th></tr></thead>
<tbody>
{{range .}}<tr><td><span class="method method--{{lower .Method}}">{{if .Method}}{{.Method}}{{else}}*{{end}}</span></td><td><code>{{.Pattern}}</code></td><td>{{.Summary}}</td><td>{{with .ExampleBody}}<code>{{.}}</code>{{end}}</td></tr>
{{end}}</tbody>
</table>
</main>
</body>
</html>`))

// RegisterIndex mounts the route listing at /_/routes and /_/routes.json.
func RegisterIndex(mux *http.ServeMux, rr *RouteRegistry) {
	HandleFunc(mux, rr, "GET /_/routes.json", "route index (json)", "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(rr.Sorted())
	})
	HandleFunc(mux, rr, "GET /_/routes", "route index", "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, rr.Sorted()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
