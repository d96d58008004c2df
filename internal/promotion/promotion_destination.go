package promotion

import (
	"fmt"
	"log/slog"
)

// Destination is where a promoted image lands. Like Source, resolution is
// deferred to Bind and single-shot.
type Destination interface {
	// Bind resolves the destination and grants the handler role pull and push
	// access on the repository. It must be called at most once per instance.
	Bind(ctx *BindContext) (*DestinationConfig, error)
}

type EcrDestinationOptions struct {
	// Tag overrides the source tag on push. Empty means the destination
	// reuses the source tag.
	Tag string
}

type ecrDestination struct {
	repository Repository
	tag        string
	bound      bool
}

// NewEcrDestination targets an ECR repository. A tag override is validated
// eagerly: an invalid tag aborts construction before any grant can happen,
// and is never truncated or sanitized.
func NewEcrDestination(repository Repository, opts EcrDestinationOptions) (Destination, error) {
	if opts.Tag != "" {
		if err := ValidateTag(opts.Tag); err != nil {
			return nil, fmt.Errorf("%w: %w", InvalidTagError, err)
		}
	}

	return &ecrDestination{repository: repository, tag: opts.Tag}, nil
}

func (d *ecrDestination) Bind(ctx *BindContext) (*DestinationConfig, error) {
	if d.bound {
		return nil, fmt.Errorf("%w - ecr destination %s", AlreadyBoundError, d.repository.URI())
	}
	d.bound = true

	d.repository.GrantPullPush(ctx.HandlerRole)

	slog.Debug("resolved ecr image destination",
		"uri", d.repository.URI(),
		"tag_override", d.tag)

	return &DestinationConfig{
		DestinationURI: d.repository.URI(),
		Login:          BuildEcrLogin(d.repository.Account(), d.repository.Region()),
		DestinationTag: d.tag,
	}, nil
}
