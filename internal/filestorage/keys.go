// Package filestorage provides the blob store drivers: local filesystem,
// MinIO and AWS S3. All drivers satisfy usecase.BlobStorage and are safe
// for concurrent use.
package filestorage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const keyPrefix = "images"

// newObjectKey derives a globally-unique storage key from a suggested
// name. The uuid component guarantees uniqueness under concurrent uploads
// with identical names; wall-clock time alone would not.
func newObjectKey(name string) string {
	base := sanitizeName(path.Base(name))
	if base == "" {
		base = "blob"
	}
	return fmt.Sprintf("%s/%s-%s", keyPrefix, uuid.NewString(), base)
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}
