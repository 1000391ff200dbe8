package artifact

import (
	"bytes"
	"fmt"
	"io"
	"time"

	minio "github.com/minio/minio-go"
)

// MinioStore keeps artifacts in an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to an S3-compatible endpoint and ensures the
// bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, secure bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, accessKey, secretKey, secure)
	if err != nil {
		return nil, fmt.Errorf("artifact: connect %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(bucket)
	if err != nil {
		return nil, fmt.Errorf("artifact: check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(bucket, ""); err != nil {
			return nil, fmt.Errorf("artifact: create bucket %s: %w", bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// Get fetches the object for key, reporting a miss on any failure.
func (s *MinioStore) Get(key string) ([]byte, bool) {
	obj, err := s.client.GetObject(s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, false
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put uploads the blob for key. Object lifecycle is bucket policy, not
// per-call ttl, so the ttl is ignored.
func (s *MinioStore) Put(key string, data []byte, _ time.Duration) error {
	_, err := s.client.PutObject(s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("artifact: upload %s: %w", key, err)
	}
	return nil
}
