package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/sxtnflur/ar-api/internal/domain"
)

const mediaPrefix = "cdn"

type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string

	// Домен, с которого раздаются файлы
	Domain string
}

// FileStorage хранит блобы в S3-совместимом хранилище и выдает публичные
// ссылки вида https://{domain}/cdn/{filename}.
type FileStorage struct {
	client *s3.Client
	bucket string
	domain string
	now    func() time.Time
}

var _ domain.FileStorage = (*FileStorage)(nil)

func New(cfg Config) (*FileStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			},
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// path-style для совместимости с S3-совместимыми сервисами
		o.UsePathStyle = true
		o.Region = cfg.Region
	})

	return &FileStorage{
		client: client,
		bucket: cfg.Bucket,
		domain: cfg.Domain,
		now:    time.Now,
	}, nil
}

// SaveFile загружает байты и возвращает публичный URL. Имя объекта
// начинается с unix-метки времени, чтобы не было коллизий.
func (s *FileStorage) SaveFile(ctx context.Context, file []byte, filename string) (string, error) {
	name := fmt.Sprint(s.now().Unix())
	if filename != "" {
		name += "_" + filename
	}
	key := mediaPrefix + "/" + name

	contentType := mimetype.Detect(file).String()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s/%s/%s", s.domain, mediaPrefix, name), nil
}

func (s *FileStorage) DeleteFileByURL(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("parse file url: %w", err)
	}
	name := u.Path[strings.LastIndex(u.Path, "/")+1:]

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(mediaPrefix + "/" + name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (s *FileStorage) FormatFilename(telegramUserID int64, fileType domain.FileType) string {
	return fmt.Sprintf("%d_%s", telegramUserID, fileType)
}
