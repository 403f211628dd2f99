package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"steam-ledger/core/storage"
	"steam-ledger/core/storage/mocks"
	"steam-ledger/feature/games/models"
	"steam-ledger/feature/sync"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleResult() *sync.Result {
	return &sync.Result{
		RunID:    "3f2a",
		Started:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Finished: time.Date(2024, 6, 1, 12, 1, 0, 0, time.UTC),
		Events: []models.SyncEvent{
			models.ReleaseDateUpdated(1337, "Q3 2077", "Q1 2078"),
			models.Released(654321, "Paint Drying Tycoon 2"),
		},
	}
}

func TestPrintNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewPrintNotifier(&buf)

	require.NoError(t, n.Notify(sampleResult().Events))
	assert.Equal(t,
		"🔎 Release date changed for 1337: \"Q3 2077\" -> \"Q1 2078\"\n"+
			"🚀 Paint Drying Tycoon 2 is newly released!\n",
		buf.String())

	buf.Reset()
	require.NoError(t, n.Summary(sampleResult()))
	assert.Contains(t, buf.String(), "Run 3f2a")
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "reports/2024/06/3f2a.json", ObjectName(sampleResult()))
}

func TestArchive(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("BucketExists", ctx, "steam-ledger").Return(true, nil)

	var uploaded []byte
	m.On("PutObject", ctx, "steam-ledger", "reports/2024/06/3f2a.json", mock.Anything, mock.AnythingOfType("int64"), minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(m, storage.Config{Bucket: "steam-ledger"}, zap.NewNop())
	name, err := a.Archive(ctx, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "reports/2024/06/3f2a.json", name)

	var decoded sync.Result
	require.NoError(t, json.Unmarshal(uploaded, &decoded))
	assert.Equal(t, "3f2a", decoded.RunID)
	assert.Len(t, decoded.Events, 2)
	m.AssertExpectations(t)
}

func TestArchive_UploadFails(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("BucketExists", ctx, "steam-ledger").Return(true, nil)
	m.On("PutObject", ctx, "steam-ledger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	a := NewArchiver(m, storage.Config{Bucket: "steam-ledger"}, zap.NewNop())
	_, err := a.Archive(ctx, sampleResult())
	assert.ErrorContains(t, err, "access denied")
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	data, err := json.Marshal(sampleResult())
	require.NoError(t, err)

	m := new(mocks.Client)
	m.On("ListObjects", ctx, "steam-ledger", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).Return(mocks.Objects(
		minio.ObjectInfo{Key: "reports/2024/05/old.json", LastModified: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		minio.ObjectInfo{Key: "reports/2024/06/3f2a.json", LastModified: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	))
	m.On("GetObject", ctx, "steam-ledger", "reports/2024/06/3f2a.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	a := NewArchiver(m, storage.Config{Bucket: "steam-ledger"}, zap.NewNop())
	res, err := a.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "3f2a", res.RunID)

	t.Run("Empty bucket", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "steam-ledger", mock.Anything).Return(mocks.Objects())

		a := NewArchiver(m, storage.Config{Bucket: "steam-ledger"}, zap.NewNop())
		res, err := a.Latest(ctx)
		require.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	m := new(mocks.Client)
	m.On("ListObjects", ctx, "steam-ledger", mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "reports/2024/05/a.json", LastModified: now.AddDate(0, 0, -40)},
		minio.ObjectInfo{Key: "reports/2024/06/b.json", LastModified: now.AddDate(0, 0, -2)},
	))

	var removed []string
	m.On("RemoveObjects", ctx, "steam-ledger", mock.Anything, minio.RemoveObjectsOptions{}).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	a := NewArchiver(m, storage.Config{Bucket: "steam-ledger", RetentionDays: 30}, zap.NewNop())
	a.now = func() time.Time { return now }

	n, err := a.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"reports/2024/05/a.json"}, removed)

	t.Run("Zero retention keeps everything", func(t *testing.T) {
		m := new(mocks.Client)
		a := NewArchiver(m, storage.Config{Bucket: "steam-ledger"}, zap.NewNop())
		n, err := a.Prune(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		m.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPrune_RemoveFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	m := new(mocks.Client)
	m.On("ListObjects", ctx, "steam-ledger", mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "reports/2024/04/a.json", LastModified: now.AddDate(0, 0, -70)},
		minio.ObjectInfo{Key: "reports/2024/05/b.json", LastModified: now.AddDate(0, 0, -40)},
	))
	m.On("RemoveObjects", ctx, "steam-ledger", mock.Anything, minio.RemoveObjectsOptions{}).
		Return(mocks.RemoveErrors(minio.RemoveObjectError{ObjectName: "reports/2024/04/a.json", Err: errors.New("locked")}))

	a := NewArchiver(m, storage.Config{Bucket: "steam-ledger", RetentionDays: 30}, zap.NewNop())
	a.now = func() time.Time { return now }

	n, err := a.Prune(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, n)
}
