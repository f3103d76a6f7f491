package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/chachabrian/wodlog-backend/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxMediaSize caps a single upload.
const MaxMediaSize = 50 << 20

// ErrUnsupportedMedia is returned for files that are not images or videos.
var ErrUnsupportedMedia = errors.New("only image and video uploads are supported")

// MediaStorage stores proof media (photos, lift videos) that records link to.
// It writes to S3 when AWS credentials are configured and to UploadDir otherwise.
type MediaStorage struct {
	uploader  *s3manager.Uploader
	bucket    string
	region    string
	uploadDir string
	baseURL   string
}

func NewMediaStorage(cfg *config.Config, log *zap.Logger) (*MediaStorage, error) {
	m := &MediaStorage{
		bucket:    cfg.AWSBucket,
		region:    cfg.AWSRegion,
		uploadDir: cfg.UploadDir,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}

	if cfg.AWSRegion != "" && cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" && cfg.AWSBucket != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		m.uploader = s3manager.NewUploader(sess)
		log.Info("media storage: s3", zap.String("bucket", cfg.AWSBucket))
		return m, nil
	}

	if err := os.MkdirAll(filepath.Join(m.uploadDir, "media"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	log.Warn("media storage: local disk, AWS S3 not configured", zap.String("dir", m.uploadDir))
	return m, nil
}

// UsingS3 reports whether uploads go to S3.
func (m *MediaStorage) UsingS3() bool {
	return m.uploader != nil
}

// LocalDir is the directory served under /uploads when S3 is not in use.
func (m *MediaStorage) LocalDir() string {
	return m.uploadDir
}

// Save stores file under the user's prefix and returns its public URL.
func (m *MediaStorage) Save(ctx context.Context, file *multipart.FileHeader, userID uint) (string, error) {
	if file.Size > MaxMediaSize {
		return "", fmt.Errorf("file exceeds %d MB", MaxMediaSize>>20)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, io.LimitReader(src, MaxMediaSize+1)); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if buffer.Len() > MaxMediaSize {
		return "", fmt.Errorf("file exceeds %d MB", MaxMediaSize>>20)
	}

	contentType := http.DetectContentType(buffer.Bytes())
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return "", ErrUnsupportedMedia
	}

	key := objectKey(userID, file.Filename)
	if m.UsingS3() {
		return m.uploadToS3(ctx, key, buffer.Bytes(), contentType)
	}
	return m.saveLocally(key, buffer.Bytes())
}

func objectKey(userID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("media", fmt.Sprint(userID), uuid.NewString()+ext)
}

func (m *MediaStorage) uploadToS3(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := m.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key), nil
}

func (m *MediaStorage) saveLocally(key string, body []byte) (string, error) {
	dst := filepath.Join(m.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %w", err)
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return m.baseURL + "/uploads/" + key, nil
}
