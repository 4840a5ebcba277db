// AngelaMos | 2026
// watermark.go

package slides

import (
	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
)

const emuPerInch = 914400

const (
	DefaultWatermarkText  = "Made with Voice-to-PPT Free"
	DefaultWatermarkColor = "F5A623"
	DefaultWatermarkSize  = 12
)

const watermarkShapeName = "Watermark"

type WatermarkStyle struct {
	Text         string
	Color        string
	SizePt       int
	Width        int64
	Height       int64
	BottomMargin int64
}

// DefaultWatermark is a 7in by 0.5in gold label, centred, half an inch above
// the bottom edge.
func DefaultWatermark(text string) WatermarkStyle {
	if text == "" {
		text = DefaultWatermarkText
	}
	return WatermarkStyle{
		Text:         text,
		Color:        DefaultWatermarkColor,
		SizePt:       DefaultWatermarkSize,
		Width:        7 * emuPerInch,
		Height:       emuPerInch / 2,
		BottomMargin: emuPerInch / 2,
	}
}

// apply stamps every slide of p once.
func (w WatermarkStyle) apply(p *pptx.Presentation) {
	slideW, slideH := p.SlideSize()

	width := min(w.Width, slideW)
	x := (slideW - width) / 2
	y := max(slideH-w.BottomMargin-w.Height, 0)

	for _, slide := range p.Slides() {
		box := slide.AddTextBox(watermarkShapeName, x, y, width, w.Height)
		para := box.TextFrame().Paragraphs()[0]
		para.SetText(w.Text)
		para.SetFont(w.SizePt, w.Color)
		para.SetAlignment("ctr")
	}
}
