package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/utils"
)

// Storage uploads book cover images to an S3-compatible bucket and
// hands back the public URL the catalog stores on the book.
type Storage struct {
	client *s3.Client
	cfg    *config.Config
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.S3.Region),
		awsConfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	return &Storage{client: client, cfg: cfg}, nil
}

// Upload streams one image to the bucket. contentLength must be set,
// S3-compatible stores reject chunked uploads without it.
func (s *Storage) Upload(ctx context.Context, file io.Reader, objectKey, contentType string, contentLength int64) (string, error) {
	op := "s3.Upload"
	rqID := utils.GetRequestIDFromCtx(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.S3.Bucket),
		Key:           aws.String(objectKey),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(contentLength),
	})
	if err != nil {
		slog.Error(
			"failed to put object",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("key", objectKey),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("put object: %w", err)
	}

	imageUrl := strings.TrimSuffix(s.cfg.S3.PublicBaseUrl, "/") + "/" + objectKey
	slog.Info("image uploaded", slog.String("op", op), slog.String("rqID", rqID), slog.String("imageUrl", imageUrl))

	return imageUrl, nil
}
