package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// PhotoStorage defines the contract for the photo storage provider
// (Cloudinary implementation).
type PhotoStorage interface {
	// UploadPhoto uploads a photo from reader and returns the public URL.
	// folder is an optional logical folder in storage (e.g. "feedback").
	UploadPhoto(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeletePhoto deletes a photo from storage using its URL.
	DeletePhoto(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a Cloudinary-backed implementation of
// PhotoStorage. Credentials come from the caller; when all three are
// empty the client falls back to the CLOUDINARY_URL environment variable.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (PhotoStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudName != "" && apiKey != "" && apiSecret != "" {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld}, nil
}

var fileNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SanitizeFileName mengganti karakter di luar [A-Za-z0-9.-] dengan underscore.
func SanitizeFileName(name string) string {
	return fileNameSanitizer.ReplaceAllString(name, "_")
}

// GeneratePhotoName membentuk nama simpan {milidetik}-{nama-tersanitasi}.
func GeneratePhotoName(fileName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeFileName(fileName))
}

func (s *cloudinaryStorage) UploadPhoto(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	publicID := GeneratePhotoName(fileName, time.Now())

	params := uploader.UploadParams{
		Folder:         folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		PublicID:       publicID,
		Overwrite:      api.Bool(false),
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) DeletePhoto(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID := s.extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete photo from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID attempts to extract the public ID from a Cloudinary URL.
// Example: https://res.cloudinary.com/demo/image/upload/v123456789/folder/sample.jpg -> folder/sample
func (s *cloudinaryStorage) extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	// Path is roughly /<cloud_name>/image/upload/v<version>/<folder>/<file>.<ext>
	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevantParts := parts[uploadIndex+1:]

	// Cloudinary versions start with 'v' followed by numbers.
	if len(relevantParts) > 0 && strings.HasPrefix(relevantParts[0], "v") {
		relevantParts = relevantParts[1:]
	}

	if len(relevantParts) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevantParts, "/")
	ext := filepath.Ext(publicIDWithExt)
	return strings.TrimSuffix(publicIDWithExt, ext)
}
