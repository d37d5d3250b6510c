package appconfig

import (
	"time"

	"github.com/tataru-works/xivmill/internal/app/appcontext"
)

type ConfigSpec struct {
	// DataDir is the directory holding the extracted game data sheets (rawexd CSVs).
	// The build aborts early if this directory does not exist.
	DataDir string `required:"true" split_words:"true" default:"../ffxiv-datamining-ko/csv"`

	// OutDir is the directory the build writes its artifacts into. Created if missing.
	OutDir string `required:"true" split_words:"true" default:"dist"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout
	// for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program logs at debug level
	// and provides a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// FetchConcurrency bounds how many remote dataset documents are fetched at once.
	FetchConcurrency int `split_words:"true" default:"8"`

	// FetchTimeout is the per-request timeout for remote dataset fetches. A document
	// that cannot be fetched within this window is treated as absent.
	FetchTimeout time.Duration `split_words:"true" default:"30s"`

	// FetchCacheDir is the directory for the on-disk remote fetch cache. Leaving this
	// empty disables the disk cache; documents are then re-fetched on every build.
	FetchCacheDir string `split_words:"true"`

	// FetchCacheTTL is how long a cached remote document stays fresh.
	FetchCacheTTL time.Duration `split_words:"true" default:"24h"`

	// TeamcraftBaseURL is the base URL the teamcraft dataset documents are fetched from.
	TeamcraftBaseURL string `split_words:"true" default:"https://raw.githubusercontent.com/ffxiv-teamcraft/ffxiv-teamcraft/staging/libs/data/src/lib/json/"`

	// DataminingCnBaseURL is the base URL the CN datamining sheets are fetched from.
	DataminingCnBaseURL string `split_words:"true" default:"https://raw.githubusercontent.com/thewakingsands/ffxiv-datamining-cn/master/"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// ProfilePath, when non-empty, enables the fgprof whole-run profiler and writes the
	// collected profile to this path when the build finishes.
	ProfilePath string `split_words:"true"`

	// S3ArtifactBucket is the bucket the publisher uploads finished artifacts to.
	// Leaving this empty disables publishing; artifacts then only land in OutDir.
	S3ArtifactBucket string `envconfig:"s3_artifact_bucket"`

	// S3ArtifactPrefix is the key prefix artifacts are uploaded under.
	S3ArtifactPrefix string `envconfig:"s3_artifact_prefix" default:"xivmill"`

	// S3ArtifactRegion is the region of the artifact bucket.
	S3ArtifactRegion string `envconfig:"s3_artifact_region" default:"ap-northeast-2"`

	// AWSAccessKey is the access key of the AWS account used for artifact publishing.
	AWSAccessKey string `envconfig:"aws_access_key"`

	// AWSSecretKey is the secret key of the AWS account used for artifact publishing.
	AWSSecretKey string `envconfig:"aws_secret_key"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
