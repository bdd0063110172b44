package utils

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxUploadFiles caps how many files a profile update may carry.
const MaxUploadFiles = 5

// ImageUploader uploads profile and clinic images to the external image
// host and returns their public URLs.
type ImageUploader interface {
	UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

type cloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from account credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (ImageUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	return &cloudinaryUploader{client: client}, nil
}

func (u *cloudinaryUploader) UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxUploadFiles {
		return nil, fmt.Errorf("at most %d files may be uploaded", MaxUploadFiles)
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
		}
		result, err := u.client.Upload.Upload(ctx, f, uploader.UploadParams{Folder: "images"})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", fh.Filename, err)
		}
		urls = append(urls, result.SecureURL)
	}
	return urls, nil
}
