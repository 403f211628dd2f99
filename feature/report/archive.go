package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"steam-ledger/core/storage"
	"steam-ledger/feature/sync"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const reportPrefix = "reports/"

// Archiver stores pass results as JSON objects under reports/<yyyy>/<mm>/<run-id>.json.
type Archiver struct {
	client    storage.Client
	bucket    string
	region    string
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewArchiver creates an archiver for the bucket of cfg.
func NewArchiver(client storage.Client, cfg storage.Config, logger *zap.Logger) *Archiver {
	return &Archiver{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		logger:    logger,
		now:       time.Now,
	}
}

// ObjectName returns where the result of a pass is archived.
func ObjectName(res *sync.Result) string {
	started := res.Started.UTC()
	return path.Join("reports", started.Format("2006"), started.Format("01"), res.RunID+".json")
}

// Archive uploads res, creating the bucket when needed, and returns the object name.
func (a *Archiver) Archive(ctx context.Context, res *sync.Result) (string, error) {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	name := ObjectName(res)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	a.logger.Info("Report archived", zap.String("object", name), zap.Int("size", len(data)))
	return name, nil
}

// Latest loads the most recently written report, or nil when there is none.
func (a *Archiver) Latest(ctx context.Context) (*sync.Result, error) {
	var latest minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: reportPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if latest.Key == "" || obj.LastModified.After(latest.LastModified) {
			latest = obj
		}
	}
	if latest.Key == "" {
		return nil, nil
	}
	return a.Load(ctx, latest.Key)
}

// Load reads one archived report.
func (a *Archiver) Load(ctx context.Context, name string) (*sync.Result, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", name, err)
	}
	defer obj.Close()

	var res sync.Result
	if err := json.NewDecoder(obj).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", name, err)
	}
	return &res, nil
}

// Prune removes reports older than the retention period and returns how many were
// removed. A zero retention keeps everything.
func (a *Archiver) Prune(ctx context.Context) (int, error) {
	if a.retention <= 0 {
		return 0, nil
	}
	cutoff := a.now().Add(-a.retention)

	var stale []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: reportPrefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, obj)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	failed := 0
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		a.logger.Warn("Failed to remove report", zap.String("object", rErr.ObjectName), zap.Error(rErr.Err))
	}

	removed := len(stale) - failed
	a.logger.Info("Old reports pruned", zap.Int("removed", removed), zap.Int("failed", failed))
	if failed > 0 {
		return removed, fmt.Errorf("failed to remove %d reports", failed)
	}
	return removed, nil
}
