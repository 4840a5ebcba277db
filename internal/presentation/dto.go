// AngelaMos | 2026
// dto.go

package presentation

import (
	"github.com/carterperez-dev/voice-to-ppt/internal/history"
	"github.com/carterperez-dev/voice-to-ppt/internal/slides"
	"github.com/carterperez-dev/voice-to-ppt/internal/templates"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type SlideRequest struct {
	SlideNumber int      `json:"slideNumber"`
	Title       string   `json:"title"       validate:"max=500"`
	Type        string   `json:"type"        validate:"max=32"`
	Format      string   `json:"format"      validate:"max=32"`
	Content     []string `json:"content"     validate:"max=50,dive,max=4000"`
}

type GenerateRequest struct {
	TemplateID string         `json:"templateId" validate:"max=64"`
	Title      string         `json:"title"      validate:"max=500"`
	Slides     []SlideRequest `json:"slides"     validate:"required,max=100,dive"`
}

func (r GenerateRequest) Outline() slides.Outline {
	specs := make([]slides.SlideSpec, 0, len(r.Slides))
	for _, s := range r.Slides {
		specs = append(specs, slides.SlideSpec{
			Number:  s.SlideNumber,
			Title:   s.Title,
			Kind:    slides.Kind(s.Type),
			Format:  slides.Format(s.Format),
			Content: s.Content,
		}.Normalize())
	}

	return slides.Outline{
		TemplateID: r.TemplateID,
		Title:      r.Title,
		Slides:     specs,
	}
}

type GenerateResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Template    string `json:"template,omitempty"`
	IsPro       bool   `json:"is_pro"`
	IsGuest     bool   `json:"is_guest"`
	GuestCount  int64  `json:"guest_count"`
	UserID      string `json:"user_id,omitempty"`
	ShowUpgrade bool   `json:"show_upgrade"`
	Watermark   bool   `json:"watermark"`
}

type HistoryResponse struct {
	History []history.Entry `json:"ppt_history"`
	Count   int             `json:"count"`
}

type TemplatesResponse struct {
	Status    string               `json:"status"`
	Templates []templates.Template `json:"templates"`
}
