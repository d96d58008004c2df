package config

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func configToReader(config string) io.Reader {
	return io.NopCloser(strings.NewReader(config))
}

const configYAML = `
promotion:
  handler_role: 'deploy-handler'
  staging_repository: 'arn:aws:ecr:us-east-1:123456789012:repository/staging'
  source:
    directory:
      path: './app'
      excludes:
        - '**/*.log'
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
      tag: 'release-1'
`

const ecrSourceYAML = `
promotion:
  source:
    ecr:
      repository: 'arn:aws:ecr:eu-west-1:210987654321:repository/base/image'
      tag: 'v1'
  destination:
    ecr:
      repository: 'arn:aws:ecr:eu-west-1:210987654321:repository/team/app'
`

func TestConfig(t *testing.T) {
	r := require.New(t)

	t.Run("must parse a directory source promotion", func(t *testing.T) {
		cfg, err := NewConfigFromReader(configToReader(configYAML))
		r.NoError(err)

		promo := cfg.Promotion
		r.Equal("deploy-handler", promo.HandlerRole)
		r.Equal("arn:aws:ecr:us-east-1:123456789012:repository/staging", promo.StagingRepository)

		r.NotNil(promo.Source.Directory)
		r.Nil(promo.Source.Ecr)
		r.Nil(promo.Source.Asset)
		r.Equal("./app", promo.Source.Directory.Path)
		r.Equal([]string{"**/*.log"}, promo.Source.Directory.Excludes)

		r.NotNil(promo.Destination.Ecr)
		r.Equal("release-1", promo.Destination.Ecr.Tag)
	})

	t.Run("must parse an ecr source promotion without a tag override", func(t *testing.T) {
		cfg, err := NewConfigFromReader(configToReader(ecrSourceYAML))
		r.NoError(err)

		promo := cfg.Promotion
		r.Nil(promo.Source.Directory)
		r.NotNil(promo.Source.Ecr)
		r.Equal("v1", promo.Source.Ecr.Tag)

		r.NotNil(promo.Destination.Ecr)
		r.Empty(promo.Destination.Ecr.Tag)
	})
}
