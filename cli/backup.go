package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"firstblog/app/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"
)

// uploadToS3 copies a backup file into the configured bucket, keyed by its
// base name.
func uploadToS3(cfg config.Backup, path string) error {
	awsConfig := &aws.Config{Region: aws.String(cfg.S3Region)}
	if cfg.S3Profile != "" {
		awsConfig.Credentials = credentials.NewSharedCredentials("", cfg.S3Profile)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return fmt.Errorf("could not create AWS session: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithFields(log.Fields{"path": path, "err": err}).Warn("Could not close backup file")
		}
	}()

	key := filepath.Base(path)
	_, err = s3.New(sess).PutObject(&s3.PutObjectInput{
		Bucket: aws.String(cfg.S3Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("could not put %q in bucket %q: %w", key, cfg.S3Bucket, err)
	}
	log.WithFields(log.Fields{"bucket": cfg.S3Bucket, "key": key}).Info("Uploaded backup")
	return nil
}
