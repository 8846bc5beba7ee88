package config

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/proa/teiacultural/storage"
)

// InitObjectStore builds the S3 client media uploads go through. Endpoint
// is optional and only set for MinIO-style deployments.
func InitObjectStore(log *logrus.Logger) storage.ObjectStore {
	cfg := storage.Config{
		Bucket:    envOr("S3_BUCKET", "teiacultural-media"),
		Region:    envOr("S3_REGION", "us-east-1"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}

	store, err := storage.NewS3Store(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}
	return store
}
