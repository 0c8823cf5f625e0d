package utils

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command errors.
const ApplicationExecutionFailedMessage = "prompter failed"
