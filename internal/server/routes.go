// Package server keeps the index of every route the app registers so the
// CLI and the /_/routes page can list them.
package server

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"
)

type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.routes = append(rr.routes, doc)
}

// List returns the routes in registration order.
func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Sorted orders by pattern, then method.
func (rr *RouteRegistry) Sorted() []RouteDoc {
	out := rr.List()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// WriteTable prints the sorted routes as aligned columns.
func (rr *RouteRegistry) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATTERN\tSUMMARY")
	for _, d := range rr.Sorted() {
		method := d.Method
		if method == "" {
			method = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", method, d.Pattern, d.Summary)
	}
	return tw.Flush()
}

// Handle registers h on mux and records it. methodAndPattern uses the
// ServeMux form "GET /path"; a bare pattern matches every method.
func Handle(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary, exampleBody string, h http.Handler) {
	method, pattern := "", methodAndPattern
	if i := strings.IndexByte(methodAndPattern, ' '); i > 0 {
		method, pattern = methodAndPattern[:i], strings.TrimSpace(methodAndPattern[i+1:])
	}
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	mux.Handle(methodAndPattern, h)
}

// HandleFunc is Handle for plain functions.
func HandleFunc(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary, exampleBody string, h http.HandlerFunc) {
	Handle(mux, rr, methodAndPattern, summary, exampleBody, h)
}
