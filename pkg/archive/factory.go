package archive

import (
	"context"
	"fmt"
	"os"
)

// Type names an archive backend.
type Type string

const (
	TypeFS  Type = "fs"
	TypeS3  Type = "s3"
	TypeGCS Type = "gcs"
)

// NewStoreFromEnv creates the archive store selected by the environment.
//
//   - SORTBENCH_ARCHIVE_TYPE: "fs" (default), "s3" or "gcs"
//   - SORTBENCH_ARCHIVE_DIR: filesystem directory (default "archive")
//   - SORTBENCH_S3_BUCKET (required for s3), SORTBENCH_S3_REGION or
//     AWS_REGION, SORTBENCH_S3_ENDPOINT, SORTBENCH_S3_PREFIX
//   - SORTBENCH_GCS_BUCKET (required for gcs), SORTBENCH_GCS_PREFIX
func NewStoreFromEnv(ctx context.Context) (Store, error) {
	t := Type(os.Getenv("SORTBENCH_ARCHIVE_TYPE"))
	if t == "" {
		t = TypeFS
	}

	switch t {
	case TypeFS:
		dir := os.Getenv("SORTBENCH_ARCHIVE_DIR")
		if dir == "" {
			dir = "archive"
		}
		return NewFileStore(dir)
	case TypeS3:
		return newS3StoreFromEnv(ctx)
	case TypeGCS:
		return newGCSStoreFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unsupported archive type: %s", t)
	}
}

func newS3StoreFromEnv(ctx context.Context) (Store, error) {
	bucket := os.Getenv("SORTBENCH_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("SORTBENCH_S3_BUCKET is required for s3 archives")
	}
	region := os.Getenv("SORTBENCH_S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}
	return NewS3Store(ctx, S3Config{
		Bucket:   bucket,
		Region:   region,
		Endpoint: os.Getenv("SORTBENCH_S3_ENDPOINT"),
		Prefix:   os.Getenv("SORTBENCH_S3_PREFIX"),
	})
}
