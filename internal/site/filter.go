package site

const FilterAll = "all"

type Card struct {
	Project Project
	Hidden  bool
}

type FilterButton struct {
	Value  string
	Label  string
	Active bool
}

// FilterController marks showcase cards hidden or visible by category.
type FilterController struct {
	catalog *Catalog
}

func NewFilterController(catalog *Catalog) *FilterController {
	return &FilterController{catalog: catalog}
}

// Normalize maps unknown filters to "all".
func (c *FilterController) Normalize(filter string) string {
	for _, cat := range c.catalog.Categories() {
		if cat.Value == filter {
			return filter
		}
	}
	return FilterAll
}

// Cards returns every project, with those outside the category hidden.
func (c *FilterController) Cards(filter string) []Card {
	projects := c.catalog.All()
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, Card{
			Project: p,
			Hidden:  filter != FilterAll && p.Category != filter,
		})
	}
	return cards
}

// Buttons returns the filter bar with exactly the selected button active.
func (c *FilterController) Buttons(filter string) []FilterButton {
	buttons := []FilterButton{{Value: FilterAll, Label: "All", Active: filter == FilterAll}}
	for _, cat := range c.catalog.Categories() {
		buttons = append(buttons, FilterButton{Value: cat.Value, Label: cat.Label, Active: filter == cat.Value})
	}
	return buttons
}
