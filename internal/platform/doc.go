package platform

// Package platform contains OS integration: resolving the default downloads
// directory from an injected environment, creating directories and revealing
// a folder in the system file manager.
