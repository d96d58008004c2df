package promotion

import (
	"fmt"
	"regexp"
)

// A tag name may contain lowercase and uppercase letters, digits,
// underscores, periods and dashes. It may not start with a period or a dash
// and may contain a maximum of 128 characters.
// https://docs.docker.com/engine/reference/commandline/tag/#extended-description
const maxTagLength = 128

var tagRegExp = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateTag checks tag against the registry tag grammar. The length rule is
// checked first so the two failure modes surface as distinct errors.
func ValidateTag(tag string) error {
	if len(tag) > maxTagLength {
		return fmt.Errorf("%w - tag is %d characters, maximum is %d", TagTooLongError, len(tag), maxTagLength)
	}
	if !tagRegExp.MatchString(tag) {
		return fmt.Errorf("%w - tag %q must consist of [A-Za-z0-9_.-] and must not start with a period or a dash", TagInvalidCharactersError, tag)
	}

	return nil
}
