package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const publishConcurrency = 4

var ErrBuildAlreadyPublished = errors.New("build already published")

// Publisher uploads finished artifacts to S3, once under the build id and
// once more under latest/ so consumers can follow a stable path.
type Publisher struct {
	S3Client *s3.Client
	S3Bucket string

	// S3Prefix carries no leading slash and no trailing slash, e.g. "xivmill".
	S3Prefix string
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.S3Client != nil && p.S3Bucket != ""
}

// Publish uploads the named artifacts from dir. Build ids are ULIDs, so a
// key collision means the same build ran twice; the existence check turns
// that into ErrBuildAlreadyPublished instead of a silent overwrite.
func (p *Publisher) Publish(ctx context.Context, buildID, dir string, names []string) error {
	if !p.Enabled() {
		return nil
	}

	if err := p.assertBuildNonExistence(ctx, buildID); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(publishConcurrency)

	for _, name := range names {
		name := name
		eg.Go(func() error {
			if err := p.upload(ctx, filepath.Join(dir, name), p.key(buildID, name)); err != nil {
				return err
			}
			return p.upload(ctx, filepath.Join(dir, name), p.key("latest", name))
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "artifact.publish").
		Str("bucket", p.S3Bucket).
		Str("buildId", buildID).
		Int("artifacts", len(names)).
		Msg("published artifacts")

	return nil
}

func (p *Publisher) key(channel, name string) string {
	if p.S3Prefix == "" {
		return channel + "/" + name
	}
	return p.S3Prefix + "/" + channel + "/" + name
}

func (p *Publisher) assertBuildNonExistence(ctx context.Context, buildID string) error {
	key := p.key(buildID, "meta.json")
	object, err := p.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotFound" {
			return nil
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrap(ErrBuildAlreadyPublished, fmt.Sprintf("key %q exists with LastModified %q", key, object.LastModified))
}

func (p *Publisher) upload(ctx context.Context, path, key string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open artifact %s", path)
	}
	defer file.Close()

	if _, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.S3Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/json"),
	}); err != nil {
		return errors.Wrapf(err, "failed to invoke PutObject for %s", key)
	}
	return nil
}
