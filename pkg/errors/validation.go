package errors

import (
	"strings"
	"unicode"
)

// ValidatePartname validates an absolute pack URI used as a partname.
//
// The rules are the ones every part must obey to round-trip through a zip
// member name or an expanded directory:
//   - No empty names
//   - Must start with a forward slash
//   - No trailing slash (a partname names an item, not a directory)
//   - No empty, "." or ".." segments
//   - No backslashes, null bytes or control characters
func ValidatePartname(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPartname, "partname cannot be empty")
	}
	if !strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPartname, "partname must begin with '/': %q", name)
	}
	if name == "/" {
		return New(ErrCodeInvalidPartname, "partname cannot be the package root")
	}
	if strings.HasSuffix(name, "/") {
		return New(ErrCodeInvalidPartname, "partname cannot end with '/': %q", name)
	}

	for _, r := range name {
		if r == '\\' {
			return New(ErrCodeInvalidPartname, "partname contains a backslash: %q", name)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPartname, "partname contains invalid control characters")
		}
	}

	for _, seg := range strings.Split(name[1:], "/") {
		switch seg {
		case "":
			return New(ErrCodeInvalidPartname, "partname contains an empty segment: %q", name)
		case ".", "..":
			return New(ErrCodeInvalidPartname, "partname contains a relative segment: %q", name)
		}
	}

	return nil
}

// ValidatePath validates a filesystem path given as a package source or
// destination. It does not check existence.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateExternalTarget validates the target of an external relationship.
// External targets are opaque and never resolved, so only emptiness and
// embedded control characters are rejected.
func ValidateExternalTarget(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return New(ErrCodeInvalidInput, "external target cannot be empty")
	}
	for _, r := range ref {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "external target contains invalid characters")
		}
	}
	return nil
}
