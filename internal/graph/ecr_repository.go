package graph

import (
	"fmt"
	"strings"

	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/google/go-containerregistry/pkg/name"
)

const ecrArnResourcePrefix = "repository/"

// EcrRepository is a resolved handle to an ECR repository. It implements the
// promotion.Repository contract against an in-graph grant ledger; the actual
// policy mutation is realized later by the infrastructure-synthesis engine.
type EcrRepository struct {
	account        string
	region         string
	repositoryName string
}

// NewEcrRepositoryFromArn resolves account, region and repository name from
// an ECR repository ARN, e.g.
// arn:aws:ecr:us-east-1:123456789012:repository/team/app.
func NewEcrRepositoryFromArn(repositoryArn string) (*EcrRepository, error) {
	parsed, err := arn.Parse(repositoryArn)
	if err != nil {
		return nil, fmt.Errorf("%w - parsing ECR repository ARN: %w", lib.BadUserInputError, err)
	}

	repositoryName, ok := strings.CutPrefix(parsed.Resource, ecrArnResourcePrefix)
	if !ok || repositoryName == "" {
		return nil, fmt.Errorf("%w - %s is not an ECR repository ARN", lib.BadUserInputError, repositoryArn)
	}

	return NewEcrRepository(parsed.AccountID, parsed.Region, repositoryName)
}

func NewEcrRepository(account, region, repositoryName string) (*EcrRepository, error) {
	repo := &EcrRepository{
		account:        account,
		region:         region,
		repositoryName: repositoryName,
	}

	if _, err := name.NewRepository(repo.URI()); err != nil {
		return nil, fmt.Errorf("%w - invalid repository %s: %w", lib.BadUserInputError, repositoryName, err)
	}

	return repo, nil
}

// URI is the repository base URI without a tag. It never carries embedded
// credentials.
func (r *EcrRepository) URI() string {
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com/%s", r.account, r.region, r.repositoryName)
}

func (r *EcrRepository) Account() string {
	return r.account
}

func (r *EcrRepository) Region() string {
	return r.region
}

func (r *EcrRepository) GrantPull(identity promotion.Identity) {
	identity.AddGrant(promotion.Grant{
		Access:        promotion.AccessPull,
		RepositoryURI: r.URI(),
	})
}

func (r *EcrRepository) GrantPullPush(identity promotion.Identity) {
	identity.AddGrant(promotion.Grant{
		Access:        promotion.AccessPullPush,
		RepositoryURI: r.URI(),
	})
}
