package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"cozyconnect_server/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const pictureKeyPrefix = "profile-pictures/"

// S3Service stores profile pictures and hands out presigned URLs.
type S3Service struct {
	Client *s3.Client
	Bucket string
	Region string
}

// InitializeS3Client initializes the S3 client
func InitializeS3Client(region string) *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// UploadImage stores an uploaded picture under a unique key and
// returns its public URL.
func (ss *S3Service) UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (string, string, error) {
	key := pictureKeyPrefix + time.Now().Format("20060102150405") + "-" + uuid.New().String() + path.Ext(fileName)

	_, err := ss.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", apperror.NewInternal("failed to upload image", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", ss.Bucket, ss.Region, key)
	return publicURL, key, nil
}

// GenerateUploadURL generates a presigned URL for uploading a file
func (ss *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := pictureKeyPrefix + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presignedURL, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", apperror.NewInternal("failed to presign upload", err)
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a file
func (ss *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presignedURL, err := presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", apperror.NewInternal("failed to presign read", err)
	}
	return presignedURL.URL, nil
}
