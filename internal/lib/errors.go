package lib

import "errors"

// BadUserInputError marks failures caused by invalid user-provided
// configuration, as opposed to internal or environmental failures. Callers
// wrap it with context via fmt.Errorf and %w.
var BadUserInputError = errors.New("bad user input")
