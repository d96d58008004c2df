package factories

import (
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/promotectl/internal/config"
	"github.com/AnotherFullstackDev/promotectl/internal/graph"
	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
)

const defaultHandlerRoleName = "promotion-handler"

// PromotionFactory assembles the promotion graph from configuration: the
// handler role, the packager, and the source/destination descriptors.
type PromotionFactory struct {
	config              config.PromotionConfig
	placeholdersService *placeholders.Service
}

func NewPromotionFactory(locator *SharedServicesLocator) *PromotionFactory {
	return &PromotionFactory{
		config:              locator.Config.Promotion,
		placeholdersService: locator.PlaceholdersService,
	}
}

// NewBindContext builds the bind-time collaborators and returns the handler
// role alongside, so the caller can inspect the grants accumulated on it.
func (f *PromotionFactory) NewBindContext() (*promotion.BindContext, *graph.Role, error) {
	roleName := f.config.HandlerRole
	if roleName == "" {
		roleName = defaultHandlerRoleName
	}
	role := graph.NewRole(roleName)

	var packager promotion.DirectoryPackager
	if f.config.StagingRepository != "" {
		staging, err := graph.NewEcrRepositoryFromArn(f.config.StagingRepository)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving staging repository: %w", err)
		}
		packager = graph.NewContextPackager(staging)
	}

	return &promotion.BindContext{
		HandlerRole: role,
		Packager:    packager,
	}, role, nil
}

func (f *PromotionFactory) NewSource() (promotion.Source, error) {
	src := f.config.Source

	switch {
	case src.Directory != nil:
		slog.Debug("configuring directory source", "path", src.Directory.Path)
		return promotion.NewDirectorySource(src.Directory.Path, promotion.DirectorySourceOptions{
			Excludes: src.Directory.Excludes,
		}), nil

	case src.Ecr != nil:
		if src.Ecr.Tag == "" {
			return nil, fmt.Errorf("%w - ecr source requires a tag", lib.BadUserInputError)
		}

		repo, err := graph.NewEcrRepositoryFromArn(src.Ecr.Repository)
		if err != nil {
			return nil, fmt.Errorf("resolving source repository: %w", err)
		}

		tag, err := f.placeholdersService.Resolve(src.Ecr.Tag)
		if err != nil {
			return nil, fmt.Errorf("resolving source tag placeholders: %w", err)
		}

		slog.Debug("configuring ecr source", "repository", repo.URI(), "tag", tag)
		return promotion.NewEcrSource(repo, tag), nil

	case src.Asset != nil:
		repo, err := graph.NewEcrRepositoryFromArn(src.Asset.Repository)
		if err != nil {
			return nil, fmt.Errorf("resolving asset repository: %w", err)
		}

		slog.Debug("configuring asset source", "image_uri", src.Asset.ImageURI)
		return promotion.NewAssetSource(graph.NewStagedAsset(src.Asset.ImageURI, repo)), nil

	default:
		return nil, fmt.Errorf("%w - no source configured for promotion", lib.BadUserInputError)
	}
}

func (f *PromotionFactory) NewDestination() (promotion.Destination, error) {
	dst := f.config.Destination
	if dst.Ecr == nil {
		return nil, fmt.Errorf("%w - no destination configured for promotion", lib.BadUserInputError)
	}

	repo, err := graph.NewEcrRepositoryFromArn(dst.Ecr.Repository)
	if err != nil {
		return nil, fmt.Errorf("resolving destination repository: %w", err)
	}

	tag := dst.Ecr.Tag
	if tag != "" {
		tag, err = f.placeholdersService.Resolve(tag)
		if err != nil {
			return nil, fmt.Errorf("resolving destination tag placeholders: %w", err)
		}
	}

	destination, err := promotion.NewEcrDestination(repo, promotion.EcrDestinationOptions{Tag: tag})
	if err != nil {
		return nil, fmt.Errorf("constructing destination for %s: %w", repo.URI(), err)
	}

	return destination, nil
}
