// Package archive keeps content-addressed snapshots of result files.
//
// Snapshots are identified by "sha256:<hex>" digests of their content, so
// storing the same file twice is a no-op.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const digestPrefix = "sha256:"

var (
	ErrNotFound      = errors.New("archive: snapshot not found")
	ErrInvalidDigest = errors.New("archive: invalid digest")
)

// Digest returns the content identifier of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return digestPrefix + hex.EncodeToString(sum[:])
}

// parseDigest returns the hex part of a digest after validating it.
func parseDigest(id string) (string, error) {
	raw, ok := strings.CutPrefix(id, digestPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigest, id)
	}
	if len(raw) != sha256.Size*2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigest, id)
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigest, id)
	}
	return raw, nil
}

func objectName(prefix, raw string) string {
	return prefix + raw + ".csv"
}
