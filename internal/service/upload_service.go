package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"github.com/yeol2/8-pumati-be/pkg/storage"
)

const uploadKeyPrefix = "uploads/"

type UploadService interface {
	GeneratePresignedURL(ctx context.Context, req dto.SinglePresignedURLRequest) (*dto.SinglePresignedURLResponse, error)
	GeneratePresignedURLs(ctx context.Context, req dto.MultiplePresignedURLsRequest) (*dto.MultiplePresignedURLsResponse, error)
}

type uploadService struct {
	presigner         storage.Presigner
	bucket            string
	region            string
	putExpiration     time.Duration
	maxRequestCount   int
	allowedExtensions map[string]struct{}
}

func NewUploadService(presigner storage.Presigner, cfg *config.Config) UploadService {
	allowed := make(map[string]struct{}, len(cfg.S3AllowedExtensions))
	for _, ext := range cfg.S3AllowedExtensions {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}

	return &uploadService{
		presigner:         presigner,
		bucket:            cfg.S3BucketName,
		region:            cfg.S3Region,
		putExpiration:     time.Duration(cfg.S3PutExpirationMins) * time.Minute,
		maxRequestCount:   cfg.S3MaxRequestCount,
		allowedExtensions: allowed,
	}
}

func (s *uploadService) GeneratePresignedURL(ctx context.Context, req dto.SinglePresignedURLRequest) (*dto.SinglePresignedURLResponse, error) {
	fileName := strings.TrimSpace(req.FileName)
	ext, err := extractExtension(fileName)
	if err != nil {
		return nil, err
	}
	if _, ok := s.allowedExtensions[ext]; !ok {
		return nil, apperror.ErrUnsupportedFileExtension
	}

	objectKey := uploadKeyPrefix + uuid.NewString() + ext

	uploadURL, err := s.presigner.PresignPut(ctx, objectKey, req.ContentType, s.putExpiration)
	if err != nil {
		return nil, err
	}

	return &dto.SinglePresignedURLResponse{
		ObjectKey: objectKey,
		UploadURL: uploadURL,
		PublicURL: storage.PublicURL(s.bucket, s.region, objectKey),
	}, nil
}

// GeneratePresignedURLs issues one grant per file, preserving input order. The
// first failing file aborts the whole batch.
func (s *uploadService) GeneratePresignedURLs(ctx context.Context, req dto.MultiplePresignedURLsRequest) (*dto.MultiplePresignedURLsResponse, error) {
	if len(req.Files) == 0 || len(req.Files) > s.maxRequestCount {
		return nil, apperror.ErrRequestCountExceeded
	}

	urls := make([]dto.SinglePresignedURLResponse, 0, len(req.Files))
	for _, file := range req.Files {
		resp, err := s.GeneratePresignedURL(ctx, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, *resp)
	}

	return &dto.MultiplePresignedURLsResponse{URLs: urls}, nil
}

// extractExtension returns the lower-cased extension including the dot. The dot
// must be interior: "photo", ".gitignore" and "photo." are all invalid.
func extractExtension(fileName string) (string, error) {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 || idx == len(fileName)-1 {
		return "", apperror.ErrInvalidFileExtension
	}
	return strings.ToLower(fileName[idx:]), nil
}
