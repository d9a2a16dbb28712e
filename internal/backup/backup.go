// Package backup snapshots the persisted application document to a local
// directory or an S3-compatible Spaces bucket.
package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Exporter writes one snapshot and returns where it landed.
type Exporter interface {
	Export(snapshot []byte) (string, error)
}

type LocalExporter struct {
	dir string
}

func NewLocalExporter(dir string) *LocalExporter {
	return &LocalExporter{dir: dir}
}

func (e *LocalExporter) Export(snapshot []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(e.dir, snapshotName())
	if err := os.WriteFile(path, snapshot, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	log.Info().Str("path", path).Msg("backup written")
	return path, nil
}

type SpacesExporter struct {
	client *s3.S3
	bucket string
	cdnURL string
}

func NewSpacesExporter(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesExporter, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesExporter{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

func (e *SpacesExporter) Export(snapshot []byte) (string, error) {
	key := "backups/" + snapshotName()

	_, err := e.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snapshot),
		ContentType: aws.String("application/json"),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload backup to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(e.cdnURL, "/"), key), nil
}

// snapshotName stamps the file so successive backups never collide.
func snapshotName() string {
	return fmt.Sprintf("ramadanAppData_%s.json", time.Now().Format("20060102_150405"))
}
