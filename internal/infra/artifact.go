package infra

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tataru-works/xivmill/internal/app/appconfig"
	"github.com/tataru-works/xivmill/internal/pkg/artifact"
)

// ArtifactWriter fails when the output directory cannot be created, which
// is one of the two fatal preconditions of a build.
func ArtifactWriter(conf *appconfig.Config) (*artifact.Writer, error) {
	return artifact.NewWriter(conf.OutDir)
}

// ArtifactPublisher is disabled (and the S3 client nil) unless a bucket is
// configured; Publish on a disabled publisher is a no-op.
func ArtifactPublisher(conf *appconfig.Config, client *s3.Client) *artifact.Publisher {
	return &artifact.Publisher{
		S3Client: client,
		S3Bucket: conf.S3ArtifactBucket,
		S3Prefix: conf.S3ArtifactPrefix,
	}
}
