package promotion

import "errors"

var (
	// InvalidTagError rejects a destination tag override at construction
	// time, before any grant is issued.
	InvalidTagError = errors.New("invalid destination tag")

	// TagTooLongError and TagInvalidCharactersError are the two distinct
	// validation failures, so callers can present an actionable message.
	TagTooLongError           = errors.New("image tag too long")
	TagInvalidCharactersError = errors.New("image tag contains invalid characters")

	// MalformedImageReferenceError rejects a resolved image URI that cannot
	// be split into a repository part and a tag.
	MalformedImageReferenceError = errors.New("malformed image reference")

	// AlreadyBoundError rejects a second Bind on the same source or
	// destination instance. Resolution is single-shot.
	AlreadyBoundError = errors.New("already bound")
)
