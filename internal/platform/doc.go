package platform

// Package platform contains OS integration glue: the standard Downloads
// directory, destination directory checks, and opening folders in the file manager.
