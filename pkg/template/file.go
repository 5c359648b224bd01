package template

import (
	"os"
	"path/filepath"
	"strings"
)

// safePath resolves rel against root and rejects any path that would escape
// root, use an absolute path, reference the home directory, or embed a null
// byte.
func safePath(root, rel string) (string, error) {
	if rel == "" || strings.ContainsRune(rel, 0) {
		return "", ErrPathRejected
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "~") {
		return "", ErrPathRejected
	}
	if strings.Contains(rel, "..") {
		return "", ErrPathRejected
	}

	joined := filepath.Join(root, rel)
	cleanRoot := filepath.Clean(root)
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", ErrPathRejected
	}
	return joined, nil
}

// readFile reads a file bounded to the renderer's project root, used by the
// readfile filter.
func (r *Renderer) readFile(rel string) (string, error) {
	full, err := safePath(r.root, rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadTemplateFile reads a check's external template reference. Only
// ".liquid"-suffixed paths are accepted — anything else is treated as an
// inline template instead of a file reference by the caller.
func (r *Renderer) loadTemplateFile(rel string) (string, error) {
	if !strings.HasSuffix(rel, ".liquid") {
		return "", ErrPathRejected
	}
	full, err := safePath(r.root, rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsFileReference reports whether a check's `template` field should be
// treated as a file path rather than an inline template body.
func IsFileReference(templateField string) bool {
	return strings.HasSuffix(strings.TrimSpace(templateField), ".liquid")
}
