package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/config"
)

var ErrInvalidImage = errors.New("invalid image payload")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService stores recipe images uploaded as base64 data URIs. With an S3
// configuration it uploads to the bucket; otherwise it writes to the local
// media directory.
type ImageService struct {
	s3       *config.S3Config
	mediaDir string
	mediaURL string
}

// NewImageService creates a new ImageService instance. s3Config may be nil.
func NewImageService(s3Config *config.S3Config, mediaDir, mediaURL string) *ImageService {
	return &ImageService{
		s3:       s3Config,
		mediaDir: mediaDir,
		mediaURL: mediaURL,
	}
}

// SaveDataURI decodes a "data:image/...;base64,..." payload, stores the
// bytes under a generated name and returns the stored URL.
func (s *ImageService) SaveDataURI(ctx context.Context, dataURI string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, contentType)
	}
	fileName := uuid.New().String() + ext

	if s.s3 != nil {
		return s.uploadToS3(ctx, data, fileName, contentType)
	}
	return s.writeLocal(data, fileName)
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3.BucketName, fileName)
	log.Debug().Str("url", publicURL).Msg("uploaded image to S3")
	return publicURL, nil
}

func (s *ImageService) writeLocal(data []byte, fileName string) (string, error) {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.mediaDir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.mediaURL + fileName, nil
}

// decodeDataURI splits and decodes a base64 data URI, returning the declared
// content type and the raw bytes.
func decodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, fmt.Errorf("%w: missing data URI prefix", ErrInvalidImage)
	}
	meta, encoded, found := strings.Cut(dataURI[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("%w: not a base64 data URI", ErrInvalidImage)
	}
	contentType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	return contentType, data, nil
}
