// Package storage links documents to the files the surrounding application
// uploaded. Uploads themselves are not handled here.
package storage

import (
	"context"
	"time"
)

// Presigner turns an object key into a time-limited download URL.
type Presigner interface {
	// PresignGet returns a URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
