package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
)

// S3Client builds the client the artifact publisher uploads through. A nil
// client is a valid result: publishing is opt-in via S3ArtifactBucket.
func S3Client(conf *appconfig.Config) (*s3.Client, error) {
	if conf.S3ArtifactBucket == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(conf.S3ArtifactRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	return s3.NewFromConfig(cfg), nil
}
