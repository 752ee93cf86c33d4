package main

// Exit codes returned by reap commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (bad config file, invalid paths)
	ExitDataError    = 3 // Data error (malformed input, empty text)
	ExitNoText       = 4 // No backend could extract text from the document
	ExitNoReferences = 5 // No reference candidates found in the text
)
