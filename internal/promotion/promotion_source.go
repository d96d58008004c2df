package promotion

import (
	"fmt"
	"log/slog"
	"strings"
)

// Source is the origin of an image promotion. Implementations defer URI, tag
// and account/region resolution until Bind, when the surrounding
// infrastructure graph is assembled.
type Source interface {
	// Bind resolves the source and grants the handler role pull access on the
	// resolved repository. It succeeds at most once per instance; a call after
	// a successful resolve fails with AlreadyBoundError. A failed Bind leaves
	// the instance unbound and may be retried.
	Bind(ctx *BindContext) (*SourceConfig, error)
}

type DirectorySourceOptions struct {
	// Excludes are glob patterns removed from the build context before
	// packaging, in addition to the context's .dockerignore.
	Excludes []string
}

type directorySource struct {
	path  string
	opts  DirectorySourceOptions
	bound bool
}

// NewDirectorySource promotes an image built from a local build context. The
// packaging step itself runs in the external build executor; Bind only
// resolves the staged asset's address and permissions.
func NewDirectorySource(path string, opts DirectorySourceOptions) Source {
	return &directorySource{path: path, opts: opts}
}

func (s *directorySource) Bind(ctx *BindContext) (*SourceConfig, error) {
	if s.bound {
		return nil, fmt.Errorf("%w - directory source %s", AlreadyBoundError, s.path)
	}

	if ctx.Packager == nil {
		return nil, fmt.Errorf("no directory packager available to package build context %s", s.path)
	}

	asset, err := ctx.Packager.PackageDirectory(s.path, s.opts.Excludes)
	if err != nil {
		return nil, fmt.Errorf("packaging build context %s: %w", s.path, err)
	}

	config, err := bindAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	s.bound = true

	return config, nil
}

type ecrSource struct {
	repository Repository
	tag        string
	bound      bool
}

// NewEcrSource promotes an existing image identified by repository and tag.
func NewEcrSource(repository Repository, tag string) Source {
	return &ecrSource{repository: repository, tag: tag}
}

func (s *ecrSource) Bind(ctx *BindContext) (*SourceConfig, error) {
	if s.bound {
		return nil, fmt.Errorf("%w - ecr source %s:%s", AlreadyBoundError, s.repository.URI(), s.tag)
	}
	if s.tag == "" {
		return nil, fmt.Errorf("%w - empty tag for repository %s", MalformedImageReferenceError, s.repository.URI())
	}
	s.bound = true

	s.repository.GrantPull(ctx.HandlerRole)

	slog.Debug("resolved ecr image source",
		"uri", s.repository.URI(),
		"tag", s.tag)

	return &SourceConfig{
		ImageURI: s.repository.URI(),
		ImageTag: s.tag,
		Login:    BuildEcrLogin(s.repository.Account(), s.repository.Region()),
	}, nil
}

type assetSource struct {
	asset ImageAsset
	bound bool
}

// NewAssetSource promotes a pre-built image artifact. No packaging step runs;
// the asset already carries its resolved URI.
func NewAssetSource(asset ImageAsset) Source {
	return &assetSource{asset: asset}
}

func (s *assetSource) Bind(ctx *BindContext) (*SourceConfig, error) {
	if s.bound {
		return nil, fmt.Errorf("%w - asset source %s", AlreadyBoundError, s.asset.ImageURI())
	}

	config, err := bindAsset(ctx, s.asset)
	if err != nil {
		return nil, err
	}
	s.bound = true

	return config, nil
}

func bindAsset(ctx *BindContext, asset ImageAsset) (*SourceConfig, error) {
	repo := asset.Repository()
	repo.GrantPull(ctx.HandlerRole)

	tag, err := extractTag(asset.ImageURI())
	if err != nil {
		return nil, err
	}

	slog.Debug("resolved image asset source",
		"uri", asset.ImageURI(),
		"tag", tag)

	return &SourceConfig{
		ImageURI: asset.ImageURI(),
		ImageTag: tag,
		Login:    BuildEcrLogin(repo.Account(), repo.Region()),
	}, nil
}

// extractTag takes the substring after the last colon. A registry host may
// carry a port colon, so the first colon is never a safe split point.
func extractTag(imageURI string) (string, error) {
	idx := strings.LastIndex(imageURI, ":")
	if idx < 0 {
		return "", fmt.Errorf("%w - no tag separator in %q", MalformedImageReferenceError, imageURI)
	}

	tag := imageURI[idx+1:]
	if tag == "" || strings.Contains(tag, "/") {
		return "", fmt.Errorf("%w - no tag after last colon in %q", MalformedImageReferenceError, imageURI)
	}

	return tag, nil
}
