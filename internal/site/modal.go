package site

import "fmt"

// ModalController looks up the project shown in the detail dialog.
type ModalController struct {
	catalog *Catalog
}

func NewModalController(catalog *Catalog) *ModalController {
	return &ModalController{catalog: catalog}
}

func (c *ModalController) Open(id string) (Project, error) {
	p, ok := c.catalog.Get(id)
	if !ok {
		return Project{}, fmt.Errorf("open %q: %w", id, ErrProjectNotFound)
	}
	return p, nil
}
