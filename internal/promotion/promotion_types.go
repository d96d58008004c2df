package promotion

// Access describes the level of repository access a grant confers.
type Access string

const (
	AccessPull     Access = "pull"
	AccessPullPush Access = "pull-push"
)

// Grant records a single repository permission handed to an identity.
type Grant struct {
	Access        Access
	RepositoryURI string
}

// Identity is a principal that will execute the promotion job. Grants
// accumulate on it while sources and destinations bind. One identity is
// shared across the source and destination of a single promotion.
type Identity interface {
	Name() string
	AddGrant(grant Grant)
}

// Repository is a handle to a container repository in the surrounding
// infrastructure graph. Account and region are only known once the graph is
// assembled, which is why sources and destinations resolve them at bind time
// instead of construction time.
type Repository interface {
	URI() string
	Account() string
	Region() string
	GrantPull(identity Identity)
	GrantPullPush(identity Identity)
}

// ImageAsset is a pre-built image artifact already addressed into a
// repository.
type ImageAsset interface {
	ImageURI() string
	Repository() Repository
}

// DirectoryPackager turns a local build context into an ImageAsset.
type DirectoryPackager interface {
	PackageDirectory(path string, excludes []string) (ImageAsset, error)
}

// BindContext carries the synthesis-time collaborators a source or
// destination needs to resolve itself. The orchestrator supplies it once the
// infrastructure graph is assembled.
type BindContext struct {
	HandlerRole Identity
	Packager    DirectoryPackager
}

// SourceConfig is the resolved origin of a promotion. It is produced exactly
// once per Bind call and is not mutated afterwards.
type SourceConfig struct {
	ImageURI string
	ImageTag string
	Login    LoginConfig
}

// DestinationConfig is the resolved destination of a promotion. An empty
// DestinationTag means the destination reuses the source tag; it is a
// deferred default, not an error.
type DestinationConfig struct {
	DestinationURI string
	Login          LoginConfig
	DestinationTag string
}
