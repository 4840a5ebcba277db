// AngelaMos | 2026
// service.go

package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
	"github.com/carterperez-dev/voice-to-ppt/internal/history"
	"github.com/carterperez-dev/voice-to-ppt/internal/slides"
	"github.com/carterperez-dev/voice-to-ppt/internal/storage"
)

const (
	DownloadPrefix = "/download/"
	FileExtension  = ".pptx"

	identityPrefixLen = 8
)

type Service struct {
	assembler *slides.Assembler
	store     storage.Store
	history   *history.Service
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(
	assembler *slides.Assembler,
	store storage.Store,
	hist *history.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		assembler: assembler,
		store:     store,
		history:   hist,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate assembles, stores and records one presentation. Failures come back
// as an error status in the response, never as a Go error; a partial document
// is never reported as a success.
func (s *Service) Generate(
	ctx context.Context,
	req GenerateRequest,
	d entitlement.Decision,
) GenerateResponse {
	resp := GenerateResponse{
		IsPro:       d.Paid(),
		IsGuest:     !d.Paid(),
		GuestCount:  d.Count,
		ShowUpgrade: d.Watermark(),
		Watermark:   d.Watermark(),
	}

	now := s.now()
	identity := d.Identity()
	if identity == "" {
		identity = fmt.Sprintf("guest-%d", now.Unix())
	}
	resp.UserID = identity

	doc, err := s.assembler.Assemble(ctx, req.Outline(), slides.Options{
		Watermark: d.Watermark(),
	})
	if err != nil {
		return s.failed(ctx, resp, "assemble presentation", err)
	}

	filename := Filename(identity, doc.TemplateID, now)
	if err := s.store.Put(ctx, filename, doc.Bytes, storage.ContentTypePPTX); err != nil {
		return s.failed(ctx, resp, "store presentation", err)
	}

	url := DownloadPrefix + filename
	entry := history.Entry{
		Filename: filename,
		Template: doc.TemplateID,
		Created:  now.Unix(),
		URL:      url,
		IsPro:    d.Paid(),
		Tier:     string(d.Tier),
	}
	if err := s.history.Record(ctx, identity, entry, d.Paid()); err != nil {
		s.logger.WarnContext(ctx, "history not recorded", "error", err)
	}

	s.logger.InfoContext(ctx, "presentation generated",
		"file", filename,
		"template", doc.TemplateID,
		"slides", doc.Slides,
		"tier", d.Tier,
		"watermark", d.Watermark(),
	)

	resp.Status = StatusSuccess
	resp.DownloadURL = url
	resp.Template = doc.TemplateID
	return resp
}

func (s *Service) failed(
	ctx context.Context,
	resp GenerateResponse,
	step string,
	err error,
) GenerateResponse {
	s.logger.ErrorContext(ctx, "presentation generation failed",
		"step", step,
		"error", err,
	)
	resp.Status = StatusError
	resp.Message = fmt.Sprintf("%s: %v", step, err)
	return resp
}

// Filename is presentation-{identity prefix}-{template}-{unix seconds}.pptx.
// The identity prefix is reduced to characters safe in a URL path segment.
func Filename(identity, templateID string, at time.Time) string {
	return fmt.Sprintf("presentation-%s-%s-%d%s",
		sanitize(identity, identityPrefixLen),
		sanitize(templateID, 0),
		at.Unix(),
		FileExtension,
	)
}

func sanitize(s string, limit int) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if limit > 0 && n == limit {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		n++
	}
	if b.Len() == 0 {
		return "anon"
	}
	return b.String()
}
