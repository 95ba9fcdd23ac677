package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platewise/backend/config"
)

// ErrStorageUnavailable is returned when no object storage is configured
var ErrStorageUnavailable = errors.New("object storage is not configured")

// ErrInvalidImage is returned for payloads that are not a base64 image data URI
var ErrInvalidImage = errors.New("expected a base64 image data URI")

// ImageService stores base64-encoded recipe and avatar images in S3
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance. A nil S3 config is
// allowed; uploads then fail with ErrStorageUnavailable.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// IsDataURI reports whether the payload looks like a base64 image data URI
func IsDataURI(data string) bool {
	return strings.HasPrefix(data, "data:image/")
}

// UploadDataURI decodes a "data:image/<ext>;base64,<payload>" string, stores
// it under the given key prefix and returns the public URL.
func (s *ImageService) UploadDataURI(ctx context.Context, dataURI, keyPrefix string) (string, error) {
	if s.s3Config == nil {
		return "", ErrStorageUnavailable
	}
	if !IsDataURI(dataURI) {
		return "", ErrInvalidImage
	}

	meta, payload, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return "", ErrInvalidImage
	}
	ext := strings.TrimPrefix(meta, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return "", ErrInvalidImage
	}

	imageData, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	fileName := fmt.Sprintf("%s/%s.%s", keyPrefix, uuid.New().String(), ext)
	contentType := "image/" + ext

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}
