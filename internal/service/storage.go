// File: internal/service/storage.go
package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileStorage 儲存上傳檔案並回傳產生的檔名
// directory 對應用途分類（logo、avatar、pdf）
type FileStorage interface {
	Save(ctx context.Context, directory string, file *multipart.FileHeader) (string, error)
}

type FakeStorage struct {
	SaveFn func(ctx context.Context, directory string, file *multipart.FileHeader) (string, error)
}

func (f *FakeStorage) Save(ctx context.Context, directory string, file *multipart.FileHeader) (string, error) {
	if f.SaveFn != nil {
		return f.SaveFn(ctx, directory, file)
	}
	panic("unexpected Save")
}

// minioStorage 將檔案存進 MinIO bucket
type minioStorage struct {
	client *minio.Client
	bucket string
}

// minioNew 建立 minio client，測試可覆寫此變數
var minioNew = func(endpoint string, opts *minio.Options) (*minio.Client, error) {
	return minio.New(endpoint, opts)
}

// NewMinioStorage 依環境變數建立物件儲存，並確保 bucket 存在
func NewMinioStorage(ctx context.Context) (FileStorage, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("MinIO configuration is missing")
	}

	client, err := minioNew(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &minioStorage{client: client, bucket: bucket}, nil
}

func (s *minioStorage) Save(ctx context.Context, directory string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, s.bucket, directory+"/"+name, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	return name, nil
}
