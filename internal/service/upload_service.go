package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog"

	"emkaan/api/internal/config"
	"emkaan/api/internal/ids"
	"emkaan/api/internal/media/sniffer"
	"emkaan/api/internal/media/svg"
	"emkaan/api/internal/storage"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	ErrNotAnImage   = errors.New("only image uploads are accepted")
)

// UploadRejectedError marks a payload the caller can fix, as opposed to a
// storage failure on our side.
type UploadRejectedError struct {
	Reason string
}

func (e *UploadRejectedError) Error() string {
	return e.Reason
}

// UploadService stores editor-supplied images in the object store and hands
// back a durable public URL. Nothing about the upload is persisted in the
// database; content records reference the returned URL directly.
type UploadService struct {
	store *storage.ObjectStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUploadService(store *storage.ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Upload validates the file by content (size cap, image magic bytes,
// declared type cross-check, SVG sanitizing) and stores it.
func (s *UploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", &UploadRejectedError{Reason: "invalid file payload"}
	}
	if header.Size > s.cfg.Upload.MaxSizeBytes {
		return "", ErrFileTooLarge
	}

	// Read one byte past the cap so an understated header size still trips
	// the limit.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.Upload.MaxSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > s.cfg.Upload.MaxSizeBytes {
		return "", ErrFileTooLarge
	}
	if len(data) == 0 {
		return "", &UploadRejectedError{Reason: "empty file"}
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return "", ErrNotAnImage
	}

	declared := sniffer.DeclaredMIME(http.Header(header.Header))
	if declared != "" && declared != result.MIME {
		return "", &UploadRejectedError{
			Reason: fmt.Sprintf("content type mismatch: declared %s, actual %s", declared, result.MIME),
		}
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return "", fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	objectKey := buildObjectKey(string(result.Type))
	url, err := s.store.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), result.MIME)
	if err != nil {
		return "", err
	}

	s.log.Debug().Str("object_key", objectKey).Int("size", len(data)).Msg("image stored")
	return url, nil
}

func buildObjectKey(ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}
