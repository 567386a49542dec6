package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Pages renders the portfolio views.
type Pages interface {
	Home(v HomeView) templ.Component
	ProjectModal(p Project) templ.Component
}

type HomeView struct {
	BasePath string
	Theme    Theme
	Menu     Menu
	Links    []NavLink
	Reveal   RevealOptions
	Filter   string
	Buttons  []FilterButton
	Cards    []Card
	Contact  FormState
	Modal    *Project
}

type Deps struct {
	Theme   *ThemeController
	Nav     *NavController
	Reveal  RevealOptions
	Filter  *FilterController
	Modal   *ModalController
	Contact *ContactController
	Pages   Pages
	Logger  *zap.Logger

	// BasePath is where the router is mounted, e.g. "/site".
	BasePath       string
	AllowedOrigins []string
}

// Site wires the portfolio controllers to HTTP. Every collaborator is
// supplied at construction.
type Site struct {
	Deps
}

func New(d Deps) (*Site, error) {
	switch {
	case d.Theme == nil, d.Nav == nil, d.Filter == nil, d.Modal == nil, d.Contact == nil:
		return nil, errors.New("site: all controllers are required")
	case d.Pages == nil:
		return nil, errors.New("site: pages are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	d.BasePath = strings.TrimRight(d.BasePath, "/")
	return &Site{Deps: d}, nil
}

// Router builds the gorilla/mux router. Paths are relative to BasePath.
func (s *Site) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.home).Methods(http.MethodGet)
	r.HandleFunc("/theme", s.toggleTheme).Methods(http.MethodPost)
	r.HandleFunc("/menu", s.toggleMenu).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", s.project).Methods(http.MethodGet)

	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	})
	r.Handle("/contact", c.Handler(http.HandlerFunc(s.contact))).Methods(http.MethodPost, http.MethodOptions)
	return r
}

func (s *Site) view(r *http.Request) HomeView {
	q := r.URL.Query()
	filter := s.Filter.Normalize(q.Get("filter"))
	return HomeView{
		BasePath: s.BasePath,
		Theme:    s.Theme.Current(r),
		Menu:     Menu{Open: q.Get("menu") == "open"},
		Links:    s.Nav.Links(q.Get("section")),
		Reveal:   s.Reveal,
		Filter:   filter,
		Buttons:  s.Filter.Buttons(filter),
		Cards:    s.Filter.Cards(filter),
		Contact:  EmptyForm(),
	}
}

// GET / (query: filter, project, menu, section)
func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	v := s.view(r)
	if id := r.URL.Query().Get("project"); id != "" {
		if p, err := s.Modal.Open(id); err == nil {
			v.Modal = &p
		}
	}
	templ.Handler(s.Pages.Home(v)).ServeHTTP(w, r)
}

// POST /theme
func (s *Site) toggleTheme(w http.ResponseWriter, r *http.Request) {
	next := s.Theme.Toggle(w, r)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"theme": next})
		return
	}
	http.Redirect(w, r, s.back(r), http.StatusSeeOther)
}

// POST /menu flips the mobile menu for clients without script.
func (s *Site) toggleMenu(w http.ResponseWriter, r *http.Request) {
	m := Menu{Open: r.URL.Query().Get("menu") == "open"}
	m.Toggle()
	target := s.BasePath + "/"
	if m.Open {
		target += "?menu=open"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GET /projects/{id}
func (s *Site) project(w http.ResponseWriter, r *http.Request) {
	p, err := s.Modal.Open(mux.Vars(r)["id"])
	if errors.Is(err, ErrProjectNotFound) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
			return
		}
		http.NotFound(w, r)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, p)
		return
	}
	templ.Handler(s.Pages.ProjectModal(p)).ServeHTTP(w, r)
}

// POST /contact (form: name, email, subject, message)
func (s *Site) contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(ContactFields))
	for _, f := range ContactFields {
		values[f] = r.PostFormValue(f)
	}

	st, err := s.Contact.Submit(r.Context(), values)
	if err != nil {
		s.Logger.Error("contact_delivery_failed", zap.Error(err))
		http.Error(w, "could not send message", http.StatusInternalServerError)
		return
	}
	if st.Status == StatusFormSentOK {
		s.Logger.Info("contact_received", zap.String("subject", strings.TrimSpace(values["subject"])))
	}

	code := http.StatusOK
	if st.Status == StatusFormError {
		code = http.StatusUnprocessableEntity
	}
	if wantsJSON(r) {
		writeJSON(w, code, st)
		return
	}
	v := s.view(r)
	v.Contact = st
	templ.Handler(s.Pages.Home(v), templ.WithStatus(code)).ServeHTTP(w, r)
}

// back returns the local referring page, or the site root.
func (s *Site) back(r *http.Request) string {
	root := s.BasePath + "/"
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, root) {
		return root
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
