package domain

import "context"

// BlobStore is the persistence adapter: a key-value store of named byte
// blobs. The register keeps the serialized catalog under one key and the
// serialized ledger under another. Get reports absence through its second
// return value rather than an error.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}
