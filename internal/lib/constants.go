package lib

import "fmt"

const (
	EnvKeyPrefix = "PROMOTECTL"
)

var (
	LogLevelEnv = fmt.Sprintf("%s_%s", EnvKeyPrefix, "LOG_LEVEL")
)
