package site

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrDuplicateProject = errors.New("duplicate project id")
)

type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Summary     string   `json:"summary" yaml:"summary"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags" yaml:"tags"`
	Image       string   `json:"image" yaml:"image"`
	Role        string   `json:"role" yaml:"role"`
	Year        string   `json:"year" yaml:"year"`
	Client      string   `json:"client" yaml:"client"`
	Features    []string `json:"features" yaml:"features"`
	LiveURL     string   `json:"liveUrl" yaml:"live_url"`
	CodeURL     string   `json:"codeUrl" yaml:"code_url"`
}

type Category struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Catalog is the ordered showcase with an id index.
type Catalog struct {
	projects   []Project
	index      map[string]int
	categories []Category
}

func NewCatalog(projects []Project, categories []Category) (*Catalog, error) {
	c := &Catalog{
		projects:   make([]Project, 0, len(projects)),
		index:      make(map[string]int, len(projects)),
		categories: append([]Category(nil), categories...),
	}
	for _, p := range projects {
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID)
		}
		c.index[p.ID] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

func (c *Catalog) All() []Project {
	return append([]Project(nil), c.projects...)
}

func (c *Catalog) Get(id string) (Project, bool) {
	i, ok := c.index[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}
