package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

type mockMinio struct {
	bucketExistsFn       func(ctx context.Context, bucket string) (bool, error)
	makeBucketFn         func(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	presignedGetObjectFn func(ctx context.Context, bucket, key string, expiry time.Duration, params url.Values) (*url.URL, error)
	statObjectFn         func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	removeObjectFn       func(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	getObjectFn          func(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (*minio.Object, error)
	putObjectFn          func(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func (m *mockMinio) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return m.bucketExistsFn(ctx, bucket)
}
func (m *mockMinio) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return m.makeBucketFn(ctx, bucket, opts)
}
func (m *mockMinio) PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration, params url.Values) (*url.URL, error) {
	return m.presignedGetObjectFn(ctx, bucket, key, expiry, params)
}
func (m *mockMinio) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return m.statObjectFn(ctx, bucket, key, opts)
}
func (m *mockMinio) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	return m.removeObjectFn(ctx, bucket, key, opts)
}
func (m *mockMinio) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (*minio.Object, error) {
	return m.getObjectFn(ctx, bucket, key, opts)
}
func (m *mockMinio) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.putObjectFn(ctx, bucket, key, reader, size, opts)
}

func noSuchKeyErr() error {
	e := minio.ToErrorResponse(errors.New("ignored"))
	e.Code = "NoSuchKey"
	return e
}

func TestInitBucket(t *testing.T) {
	tests := []struct {
		name           string
		exists         bool
		existsErr      error
		makeErr        error
		wantMakeCalled bool
		wantErr        bool
	}{
		{
			name:           "bucket exists, no create",
			exists:         true,
			wantMakeCalled: false,
		},
		{
			name:           "bucket does not exist, create succeeds",
			exists:         false,
			wantMakeCalled: true,
		},
		{
			name:      "BucketExists error bubbles up",
			existsErr: errors.New("exist fail"),
			wantErr:   true,
		},
		{
			name:           "MakeBucket error bubbles up",
			exists:         false,
			makeErr:        errors.New("make fail"),
			wantMakeCalled: true,
			wantErr:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			makeCalled := false
			mock := &mockMinio{
				bucketExistsFn: func(ctx context.Context, bucket string) (bool, error) {
					return tc.exists, tc.existsErr
				},
				makeBucketFn: func(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
					makeCalled = true
					return tc.makeErr
				},
			}
			s := &MinioStorage{client: mock}

			err := s.InitBucket("assets")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if makeCalled != tc.wantMakeCalled {
				t.Errorf("MakeBucket called = %v; want %v", makeCalled, tc.wantMakeCalled)
			}
		})
	}
}

func TestGeneratePresignedDownloadURL(t *testing.T) {
	fake, _ := url.Parse("https://cdn.example.com/download?x=1")
	mock := &mockMinio{
		presignedGetObjectFn: func(_ context.Context, bucket, key string, expiry time.Duration, _ url.Values) (*url.URL, error) {
			if bucket != "assets" {
				t.Errorf("bucket = %q; want %q", bucket, "assets")
			}
			if key != "thumbnails/abc/medium.webp" {
				t.Errorf("key = %q; want %q", key, "thumbnails/abc/medium.webp")
			}
			if expiry != 15*time.Minute {
				t.Errorf("expiry = %v; want %v", expiry, 15*time.Minute)
			}
			return fake, nil
		},
	}
	s := &MinioStorage{client: mock}

	out, err := s.GeneratePresignedDownloadURL(context.Background(), "assets", "thumbnails/abc/medium.webp", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != fake.String() {
		t.Errorf("url = %q; want %q", out, fake.String())
	}
}

func TestGeneratePresignedDownloadURL_Error(t *testing.T) {
	mock := &mockMinio{
		presignedGetObjectFn: func(_ context.Context, _, _ string, _ time.Duration, _ url.Values) (*url.URL, error) {
			return nil, errors.New("fail-get")
		},
	}
	s := &MinioStorage{client: mock}

	_, err := s.GeneratePresignedDownloadURL(context.Background(), "b", "k", 5*time.Minute)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFileExists(t *testing.T) {
	ctx := context.Background()

	// object exists
	mock1 := &mockMinio{
		statObjectFn: func(_ context.Context, _, _ string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, nil
		},
	}
	s1 := &MinioStorage{client: mock1}
	exists, err := s1.FileExists(ctx, "b", "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("exists = false; want true")
	}

	// NoSuchKey maps to a clean false
	mock2 := &mockMinio{
		statObjectFn: func(_ context.Context, _, _ string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, noSuchKeyErr()
		},
	}
	s2 := &MinioStorage{client: mock2}
	exists2, err2 := s2.FileExists(ctx, "b", "bar")
	if err2 != nil {
		t.Fatalf("unexpected error: %v", err2)
	}
	if exists2 {
		t.Error("exists = true; want false")
	}

	// other errors propagate
	mock3 := &mockMinio{
		statObjectFn: func(_ context.Context, _, _ string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, errors.New("boom")
		},
	}
	s3 := &MinioStorage{client: mock3}
	if _, err3 := s3.FileExists(ctx, "b", "baz"); err3 == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestStatFile_NotFound(t *testing.T) {
	mock := &mockMinio{
		statObjectFn: func(_ context.Context, _, _ string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, noSuchKeyErr()
		},
	}
	s := &MinioStorage{client: mock}

	_, err := s.StatFile(context.Background(), "b", "missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestSaveFile_ForwardsContentType(t *testing.T) {
	var gotOpts minio.PutObjectOptions
	var gotSize int64
	mock := &mockMinio{
		putObjectFn: func(_ context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotOpts = opts
			gotSize = size
			return minio.UploadInfo{}, nil
		},
	}
	s := &MinioStorage{client: mock}

	body := strings.NewReader("webp-bytes")
	err := s.SaveFile(context.Background(), "assets", "thumbnails/abc/small.webp", body, int64(body.Len()), map[string]string{"Content-Type": "image/webp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOpts.ContentType != "image/webp" {
		t.Errorf("content type = %q; want image/webp", gotOpts.ContentType)
	}
	if gotSize != int64(len("webp-bytes")) {
		t.Errorf("size = %d; want %d", gotSize, len("webp-bytes"))
	}
}

func TestRemoveFile_Error(t *testing.T) {
	mock := &mockMinio{
		removeObjectFn: func(_ context.Context, _, _ string, _ minio.RemoveObjectOptions) error {
			return errors.New("remove fail")
		},
	}
	s := &MinioStorage{client: mock}

	if err := s.RemoveFile(context.Background(), "b", "k"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
