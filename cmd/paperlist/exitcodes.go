package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not in a repository, bad config)
	ExitDataError   = 3 // Data error (corrupt catalog, validation failures)
)
