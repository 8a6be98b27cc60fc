//go:build !gcp

package archive

import (
	"context"
	"fmt"
)

func newGCSStoreFromEnv(context.Context) (Store, error) {
	return nil, fmt.Errorf("gcs archives are not enabled in this build (use -tags gcp)")
}
