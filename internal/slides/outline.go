// AngelaMos | 2026
// outline.go

package slides

type Kind string

const (
	KindTitle   Kind = "title"
	KindContent Kind = "content"
)

type Format string

const (
	FormatBullets   Format = "bullets"
	FormatParagraph Format = "paragraph"
)

// SlideSpec describes one generated slide. For the paragraph format only the
// first content element is used.
type SlideSpec struct {
	Number  int
	Title   string
	Kind    Kind
	Format  Format
	Content []string
}

// Normalize fills in the default kind and format.
func (s SlideSpec) Normalize() SlideSpec {
	if s.Kind != KindTitle {
		s.Kind = KindContent
	}
	if s.Format != FormatParagraph {
		s.Format = FormatBullets
	}
	return s
}

type Outline struct {
	TemplateID string
	Title      string
	Slides     []SlideSpec
}
