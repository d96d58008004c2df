package promotion

import (
	"fmt"

	ecrhelper "github.com/awslabs/amazon-ecr-credential-helper/ecr-login"
	ecrapi "github.com/awslabs/amazon-ecr-credential-helper/ecr-login/api"
	"github.com/google/go-containerregistry/pkg/authn"
)

type LoginType string

const (
	LoginTypeECR LoginType = "ecr"
	// LoginTypeExternalECR covers repositories owned by a foreign account
	// whose credentials are injected by the build executor rather than
	// resolved from the pipeline's own account.
	LoginTypeExternalECR LoginType = "external-ecr"
)

// LoginConfig describes how the promotion job authenticates against a
// registry. Command is a textual contract consumed verbatim by downstream
// build scripts. Region is set iff Type implies a region-scoped registry.
type LoginConfig struct {
	Command string
	Type    LoginType
	Region  string
}

// BuildEcrLogin produces the login command for an ECR registry resolved to
// account and region. Identical inputs yield byte-identical commands; the
// build executor caches on the exact command text.
func BuildEcrLogin(accountID, region string) LoginConfig {
	registryHost := fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", accountID, region)

	return LoginConfig{
		Command: fmt.Sprintf("aws ecr get-login-password --region %s | docker login --username AWS --password-stdin %s", region, registryHost),
		Type:    LoginTypeECR,
		Region:  region,
	}
}

// Keychain returns the credential resolver the promotion job can hand to
// go-containerregistry when it eventually pulls or pushes. Building the
// keychain performs no network calls; credentials resolve lazily.
func (c LoginConfig) Keychain() authn.Keychain {
	helper := ecrhelper.NewECRHelper(ecrhelper.WithClientFactory(ecrapi.DefaultClientFactory{}))
	return authn.NewKeychainFromHelper(helper)
}
