package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads blobs to Cloudinary. Configured through the
// CLOUDINARY_URL environment variable.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func (s *CloudinaryStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	up, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     key,
		ResourceType: "auto",
		Overwrite:    boolPtr(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return up.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	return err
}

func (s *CloudinaryStore) URL(key string) string {
	asset, err := s.cld.Image(key)
	if err != nil {
		return ""
	}
	url, err := asset.String()
	if err != nil {
		return ""
	}
	return url
}
