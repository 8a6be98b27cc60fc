//go:build gcp

package archive

import (
	"context"
	"fmt"
	"os"
)

func newGCSStoreFromEnv(ctx context.Context) (Store, error) {
	bucket := os.Getenv("SORTBENCH_GCS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("SORTBENCH_GCS_BUCKET is required for gcs archives")
	}
	return NewGCSStore(ctx, GCSConfig{
		Bucket: bucket,
		Prefix: os.Getenv("SORTBENCH_GCS_PREFIX"),
	})
}
