package graph

import (
	"testing"

	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
	"github.com/stretchr/testify/require"
)

const testRepositoryArn = "arn:aws:ecr:us-east-1:123456789012:repository/team/app"

func TestEcrRepository(t *testing.T) {
	r := require.New(t)

	t.Run("must resolve account, region and URI from an ARN", func(t *testing.T) {
		repo, err := NewEcrRepositoryFromArn(testRepositoryArn)
		r.NoError(err)

		r.Equal("123456789012", repo.Account())
		r.Equal("us-east-1", repo.Region())
		r.Equal("123456789012.dkr.ecr.us-east-1.amazonaws.com/team/app", repo.URI())
	})

	t.Run("must reject a malformed ARN", func(t *testing.T) {
		_, err := NewEcrRepositoryFromArn("not-an-arn")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("must reject a non-repository ARN", func(t *testing.T) {
		_, err := NewEcrRepositoryFromArn("arn:aws:ecs:us-east-1:123456789012:cluster/prod")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("must reject an invalid repository name", func(t *testing.T) {
		_, err := NewEcrRepository("123456789012", "us-east-1", "UPPER CASE")
		r.ErrorIs(err, lib.BadUserInputError)
	})
}

func TestRoleGrants(t *testing.T) {
	r := require.New(t)

	t.Run("must deduplicate identical grants", func(t *testing.T) {
		repo, err := NewEcrRepositoryFromArn(testRepositoryArn)
		r.NoError(err)

		role := NewRole("deploy-handler")
		repo.GrantPull(role)
		repo.GrantPull(role)

		r.Equal([]promotion.Grant{
			{Access: promotion.AccessPull, RepositoryURI: repo.URI()},
		}, role.Grants())
	})

	t.Run("must keep distinct access levels apart", func(t *testing.T) {
		repo, err := NewEcrRepositoryFromArn(testRepositoryArn)
		r.NoError(err)

		role := NewRole("deploy-handler")
		repo.GrantPull(role)
		repo.GrantPullPush(role)

		r.Len(role.Grants(), 2)
	})

	t.Run("grants accessor must return a copy", func(t *testing.T) {
		repo, err := NewEcrRepositoryFromArn(testRepositoryArn)
		r.NoError(err)

		role := NewRole("deploy-handler")
		repo.GrantPull(role)

		grants := role.Grants()
		grants[0].Access = promotion.AccessPullPush

		r.Equal(promotion.AccessPull, role.Grants()[0].Access)
	})
}
