package page

import (
	"github.com/a-h/templ"

	"github.com/sahuAhmadzafar/PMT/internal/site"
)

// SitePages renders the portfolio.
type SitePages struct{}

func (SitePages) Home(v site.HomeView) templ.Component {
	return render("site", v)
}

func (SitePages) ProjectModal(p site.Project) templ.Component {
	return render("site_modal", p)
}
