package site

// Section is a page section's vertical extent in document pixels.
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// ActiveOffset is added to the scroll position before matching sections so a
// section becomes active slightly before its top reaches the viewport edge.
const ActiveOffset = 100

// ScrolledThreshold is the scroll depth past which the nav bar turns solid.
const ScrolledThreshold = 100

// ActiveSection returns the id of the section containing scrollY+ActiveOffset.
// When sections overlap the last match wins; no match returns "".
func ActiveSection(sections []Section, scrollY float64) string {
	y := scrollY + ActiveOffset
	active := ""
	for _, s := range sections {
		if y >= s.Top && y < s.Top+s.Height {
			active = s.ID
		}
	}
	return active
}

// ScrollProgress is how far the page is scrolled, in [0, 1].
func ScrollProgress(scrollTop, docHeight, winHeight float64) float64 {
	scrollable := docHeight - winHeight
	if scrollable <= 0 {
		return 0
	}
	p := scrollTop / scrollable
	return min(max(p, 0), 1)
}

func NavScrolled(scrollY float64) bool {
	return scrollY > ScrolledThreshold
}

// Menu is the mobile navigation menu.
type Menu struct {
	Open bool
}

func (m *Menu) Toggle() { m.Open = !m.Open }

func (m *Menu) Close() { m.Open = false }

// AriaExpanded is the value for the toggle's aria-expanded attribute.
func (m Menu) AriaExpanded() string {
	if m.Open {
		return "true"
	}
	return "false"
}

type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// NavController owns the section list rendered into the nav bar.
type NavController struct {
	links []NavLink
}

func NewNavController(links []NavLink) *NavController {
	return &NavController{links: append([]NavLink(nil), links...)}
}

// Links returns the nav links with the one pointing at active marked.
func (c *NavController) Links(active string) []NavLink {
	out := make([]NavLink, len(c.links))
	for i, l := range c.links {
		l.Active = active != "" && l.Href == "#"+active
		out[i] = l
	}
	return out
}
