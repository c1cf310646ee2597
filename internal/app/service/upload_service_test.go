package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/storage"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	folder string
}

func (u *recordingUploader) Name() string { return "recording" }

func (u *recordingUploader) Upload(_ context.Context, folder, filename, _ string, _ []byte) (string, error) {
	u.folder = folder
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

func (u *recordingUploader) PresignUpload(_ context.Context, folder, filename, _ string) (*storage.PresignedUpload, error) {
	key := folder + "/" + filename
	return &storage.PresignedUpload{UploadURL: "https://upload.example.com/" + key, FileURL: "https://cdn.example.com/" + key, Key: key}, nil
}

func TestUploadService_Inline(t *testing.T) {
	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	vendor := createVendor(t, repos, "Upload Shop")
	svc := NewUploadService(repos, storage.NewInlineUploader(), nil)

	result, err := svc.Upload(bg, vendor.EditToken, "a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "inline", result.Uploader)
	assert.True(t, strings.HasPrefix(result.URL, "data:image/png;base64,"))

	_, err = svc.Presign(bg, vendor.EditToken, "a.png", "image/png")
	assert.ErrorIs(t, err, ErrPresignUnavailable)
}

func TestUploadService_Validation(t *testing.T) {
	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	vendor := createVendor(t, repos, "Upload Shop")
	svc := NewUploadService(repos, storage.NewInlineUploader(), nil)

	tests := []struct {
		name        string
		token       string
		contentType string
		data        []byte
		wantErr     error
	}{
		{name: "svg rejected", token: vendor.EditToken, contentType: "image/svg+xml", data: []byte("x"), wantErr: util.ErrInvalidArgument},
		{name: "empty file", token: vendor.EditToken, contentType: "image/png", data: nil, wantErr: util.ErrInvalidArgument},
		{name: "over 5MB", token: vendor.EditToken, contentType: "image/jpeg", data: bytes.Repeat([]byte{1}, storage.MaxImageSize+1), wantErr: util.ErrInvalidArgument},
		{name: "bad token", token: "bad", contentType: "image/png", data: []byte("x"), wantErr: ErrInvalidEditToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(bg, tt.token, "file", tt.contentType, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUploadService_VendorFolderAndPresign(t *testing.T) {
	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	vendor := createVendor(t, repos, "Upload Shop")
	uploader := &recordingUploader{}
	svc := NewUploadService(repos, uploader, nil)

	result, err := svc.Upload(bg, vendor.EditToken, "a.webp", "image/webp", []byte("webp"))
	require.NoError(t, err)
	assert.Equal(t, "vendors/"+vendor.ID, uploader.folder)
	assert.Equal(t, "https://cdn.example.com/vendors/"+vendor.ID+"/a.webp", result.URL)

	presigned, err := svc.Presign(bg, vendor.EditToken, "b.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "vendors/"+vendor.ID+"/b.jpg", presigned.Key)

	_, err = svc.Presign(bg, vendor.EditToken, "b.pdf", "application/pdf")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
	_, err = svc.Presign(bg, "bad", "b.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidEditToken)
}
