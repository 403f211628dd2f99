// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The sync report archive is its only user: every finished
// pass can be written as a JSON object, listed, read back and pruned after a retention
// period. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
