package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"hangouts-backend/internal/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const avatarURLTTL = 5 * time.Minute

// AvatarService issues presigned S3 upload URLs for user profile photos
type AvatarService struct {
	users    UserStore
	s3Client *s3.Client
	bucket   string
	region   string
}

// NewAvatarService creates a new avatar service
func NewAvatarService(users UserStore, region, bucket, accessKey, secretKey, endpoint string) (*AvatarService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarService{
		users:    users,
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
	}, nil
}

// UploadResponse carries the presigned upload URL and the final public URL
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}

// GetUploadURL generates a presigned PUT URL for a user's avatar and records
// the resulting public URL as the user's photo URL
func (s *AvatarService) GetUploadURL(ctx context.Context, userID, filename, contentType string) (*UploadResponse, error) {
	if contentType == "" {
		return nil, fmt.Errorf("%w: content_type required", errs.ErrInvalidInput)
	}

	// Make sure the user exists before handing out an upload slot
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("avatars/%s/%s%s", user.ID, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = avatarURLTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	avatarURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if err := s.users.UpdatePhotoURL(ctx, user.ID, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to record avatar url: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		AvatarURL: avatarURL,
		ExpiresIn: int(avatarURLTTL.Seconds()),
	}, nil
}
