package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"emkaan/api/internal/config"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newUploadFixture(data []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "upload.bin",
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return memFile{bytes.NewReader(data)}, header
}

func uploadTestService(maxSize int64) *UploadService {
	cfg := &config.AppConfig{Upload: config.UploadConfig{MaxSizeBytes: maxSize}}
	// The store stays nil: every case below must be rejected before any
	// object-store access.
	return NewUploadService(nil, cfg, zerolog.Nop())
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := uploadTestService(8)
	file, header := newUploadFixture(bytes.Repeat([]byte{0xff}, 16), "image/jpeg")

	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := uploadTestService(1 << 20)
	file, header := newUploadFixture([]byte("%PDF-1.4 definitely a pdf"), "")

	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestUploadRejectsContentTypeMismatch(t *testing.T) {
	svc := uploadTestService(1 << 20)
	// Real PNG bytes declared as JPEG.
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 16)...)
	file, header := newUploadFixture(png, "image/jpeg")

	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorContains(t, err, "content type mismatch")

	var rejected *UploadRejectedError
	assert.ErrorAs(t, err, &rejected, "mismatch is the caller's mistake, not a storage failure")
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := uploadTestService(1 << 20)
	file, header := newUploadFixture(nil, "")

	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorContains(t, err, "empty file")
}
