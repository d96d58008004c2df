package factories

import (
	"strings"
	"testing"

	"github.com/AnotherFullstackDev/promotectl/internal/config"
	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
	"github.com/stretchr/testify/require"
)

const promotionYAML = `
promotion:
  handler_role: 'deploy-handler'
  source:
    ecr:
      repository: 'arn:aws:ecr:eu-west-1:210987654321:repository/base/image'
      tag: 'v1'
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
      tag: 'release-1'
`

func newTestLocator(t *testing.T, configYAML string) *SharedServicesLocator {
	t.Helper()

	cfg, err := config.NewConfigFromReader(strings.NewReader(configYAML))
	require.NoError(t, err)

	return NewSharedServicesLocator(cfg, placeholders.NewService(nil))
}

func TestPromotionFactory(t *testing.T) {
	r := require.New(t)

	t.Run("must resolve a full promotion end to end", func(t *testing.T) {
		factory := NewPromotionFactory(newTestLocator(t, promotionYAML))

		source, err := factory.NewSource()
		r.NoError(err)
		destination, err := factory.NewDestination()
		r.NoError(err)
		bindCtx, role, err := factory.NewBindContext()
		r.NoError(err)

		sourceConfig, err := source.Bind(bindCtx)
		r.NoError(err)
		destinationConfig, err := destination.Bind(bindCtx)
		r.NoError(err)

		r.Equal("210987654321.dkr.ecr.eu-west-1.amazonaws.com/base/image", sourceConfig.ImageURI)
		r.Equal("v1", sourceConfig.ImageTag)
		r.Contains(sourceConfig.Login.Command, "--region eu-west-1")

		r.Equal("123456789012.dkr.ecr.us-east-1.amazonaws.com/team/app", destinationConfig.DestinationURI)
		r.Equal("release-1", destinationConfig.DestinationTag)
		r.Contains(destinationConfig.Login.Command, "--region us-east-1")

		r.Equal("deploy-handler", role.Name())
		r.Equal([]promotion.Grant{
			{Access: promotion.AccessPull, RepositoryURI: sourceConfig.ImageURI},
			{Access: promotion.AccessPullPush, RepositoryURI: destinationConfig.DestinationURI},
		}, role.Grants())
	})

	t.Run("must fail without a source", func(t *testing.T) {
		factory := NewPromotionFactory(newTestLocator(t, `
promotion:
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
`))

		_, err := factory.NewSource()
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("ecr source must require a tag", func(t *testing.T) {
		factory := NewPromotionFactory(newTestLocator(t, `
promotion:
  source:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/base/image'
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
`))

		_, err := factory.NewSource()
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("must surface an invalid destination tag before binding", func(t *testing.T) {
		factory := NewPromotionFactory(newTestLocator(t, `
promotion:
  source:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/base/image'
      tag: 'v1'
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
      tag: '.bad'
`))

		_, err := factory.NewDestination()
		r.ErrorIs(err, promotion.InvalidTagError)
	})

	t.Run("directory source must require a staging repository at bind time", func(t *testing.T) {
		factory := NewPromotionFactory(newTestLocator(t, `
promotion:
  source:
    directory:
      path: './app'
  destination:
    ecr:
      repository: 'arn:aws:ecr:us-east-1:123456789012:repository/team/app'
`))

		source, err := factory.NewSource()
		r.NoError(err)

		bindCtx, _, err := factory.NewBindContext()
		r.NoError(err)

		_, err = source.Bind(bindCtx)
		r.Error(err)
	})
}
