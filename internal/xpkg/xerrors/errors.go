package xerrors

import "errors"

// Cross-service sentinels shared by the mode dispatcher and the service
// entrypoints. Domain errors live in each service's core package.
var (
	ErrParseCmd       = errors.New("cannot parse arguments")
	ErrHelp           = errors.New("")
	ErrModeFlag       = errors.New("mode flag is required")
	ErrUnknownService = errors.New("unknown service, write --help command to see valid services")
)
