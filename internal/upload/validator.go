package upload

import (
	"strings"

	"github.com/ondrasimku/video-publish-service/internal/domain"
)

// Form holds the raw fields of an upload request as submitted.
type Form struct {
	Category     string
	Language     string
	Monetization string
	Schedule     string
	VideoLink    string
	VideoFile    *domain.FileSource
}

// Validate normalizes a form into an UploadRequest. A non-empty file always
// wins over a link.
func Validate(form Form) (domain.UploadRequest, error) {
	category := strings.TrimSpace(form.Category)
	language := strings.TrimSpace(form.Language)
	monetization := strings.TrimSpace(form.Monetization)

	if category == "" || language == "" || monetization == "" {
		return domain.UploadRequest{}, domain.Validation(domain.ErrMissingFields)
	}

	req := domain.UploadRequest{
		Category:     category,
		Language:     language,
		Monetization: domain.Monetization(monetization),
		Schedule:     optional(form.Schedule),
	}

	link := strings.TrimSpace(form.VideoLink)
	switch {
	case form.VideoFile != nil && form.VideoFile.Size > 0:
		req.Source = *form.VideoFile
	case link != "":
		req.Source = domain.LinkSource{URL: link}
	default:
		return domain.UploadRequest{}, domain.Validation(domain.ErrNoSource)
	}

	return req, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
