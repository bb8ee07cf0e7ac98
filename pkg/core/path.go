package core

import (
	"path/filepath"
	"strings"
)

// ToPosixPath replaces backslashes with forward slashes.
func ToPosixPath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// ToWin32Path replaces forward slashes with backslashes.
func ToWin32Path(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

// ToPlatformPath replaces both kinds of slashes with the separator of the
// current platform.
func ToPlatformPath(path string) string {
	sep := string(filepath.Separator)
	return strings.NewReplacer("/", sep, `\`, sep).Replace(path)
}
