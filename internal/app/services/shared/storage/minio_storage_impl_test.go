package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket      string
	object      string
	body        []byte
	contentType string
	err         error
}

func (f *fakePutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket = bucketName
	f.object = objectName
	f.contentType = opts.ContentType
	f.body, _ = io.ReadAll(reader)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestMinioStorage_ArchiveHealthCard(t *testing.T) {
	card := &models.HealthCard{ID: "hc-1", WaterbodyID: "lake-1", RiskScore: 30}
	card.SetCreatedAtUpdatedAt(
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 10, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
	)

	t.Run("writes the json snapshot", func(t *testing.T) {
		putter := &fakePutter{}
		store := &minioStorage{MinioClient: putter, BucketName: "archive"}

		objectName, err := store.ArchiveHealthCard(context.Background(), card)

		require.NoError(t, err)
		assert.Equal(t, "health-cards/lake-1/2024-05-01T03:30:00Z.json", objectName)
		assert.Equal(t, "archive", putter.bucket)
		assert.Equal(t, objectName, putter.object)
		assert.Equal(t, constvars.MIMEApplicationJSON, putter.contentType)

		var stored models.HealthCard
		require.NoError(t, json.Unmarshal(putter.body, &stored))
		assert.Equal(t, "hc-1", stored.ID)
		assert.Equal(t, 30, stored.RiskScore)
	})

	t.Run("upload failure", func(t *testing.T) {
		store := &minioStorage{MinioClient: &fakePutter{err: errors.New("bucket missing")}, BucketName: "archive"}

		_, err := store.ArchiveHealthCard(context.Background(), card)

		assert.Error(t, err)
	})
}
