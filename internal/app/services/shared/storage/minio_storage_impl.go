package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	MinioClient objectPutter
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.HealthCardArchiveStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) ArchiveHealthCard(ctx context.Context, healthCard *models.HealthCard) (string, error) {
	body, err := json.Marshal(healthCard)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := HealthCardObjectName(healthCard)
	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectName, nil
}

// HealthCardObjectName keys snapshots by waterbody and update time so repeated
// archiving of the same snapshot overwrites one object.
func HealthCardObjectName(healthCard *models.HealthCard) string {
	return fmt.Sprintf(
		constvars.HealthCardArchiveObjectFormat,
		healthCard.WaterbodyID,
		healthCard.UpdatedAt.UTC().Format(time.RFC3339),
	)
}
