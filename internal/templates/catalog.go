// AngelaMos | 2026
// catalog.go

package templates

import (
	"fmt"
)

type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Thumbnails  []string `json:"thumbnails"`
	File        string   `json:"-"`
}

const thumbnailsPerTemplate = 2

var catalogIDs = []struct {
	id   string
	name string
}{
	{"geometric", "geometric"},
	{"streamline", "Streamline"},
	{"swiss", "swiss"},
	{"momentum", "momentum"},
	{"material", "material"},
	{"slate", "slate"},
	{"paperback", "paperback"},
}

// Catalog returns the built-in templates in display order.
func Catalog() []Template {
	out := make([]Template, 0, len(catalogIDs))
	for _, c := range catalogIDs {
		out = append(out, newTemplate(c.id, c.name))
	}
	return out
}

func newTemplate(id, name string) Template {
	thumbs := make([]string, 0, thumbnailsPerTemplate)
	for i := 1; i <= thumbnailsPerTemplate; i++ {
		thumbs = append(thumbs, fmt.Sprintf("/thumbnails/thumbnail_%s_%d.png", id, i))
	}

	return Template{
		ID:          id,
		Name:        name,
		Description: "",
		Thumbnails:  thumbs,
		File:        id + ".pptx",
	}
}
