package service

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidObjectPath = errors.New("invalid object path")

// StorageService issues public URLs for stored files (images, PDFs) so the
// client can render them inline or in a fullscreen overlay. The files
// themselves live behind the configured public base; this service only does
// URL issuance.
type StorageService struct {
	publicBaseURL string
}

func NewStorageService(publicBaseURL string) *StorageService {
	return &StorageService{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *StorageService) PublicURL(path string) (string, error) {
	cleaned := strings.TrimLeft(path, "/")
	if cleaned == "" || strings.Contains(cleaned, "..") {
		return "", ErrInvalidObjectPath
	}

	segments := strings.Split(cleaned, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return s.publicBaseURL + "/" + strings.Join(segments, "/"), nil
}
