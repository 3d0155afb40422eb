package packs

import (
	"path/filepath"
	"strings"
)

// NormalizePackageName turns a command line token into a package name.
// Trailing slashes added by shell completion are removed and only the
// basename is kept, so ./dotfiles/vim/ becomes vim.
func NormalizePackageName(token string) string {
	trimmed := strings.TrimRight(token, "/")
	if trimmed == "" {
		return token
	}
	return filepath.Base(filepath.Clean(trimmed))
}

// NormalizePackageNames normalizes every token, keeping order and duplicates.
func NormalizePackageNames(tokens []string) []string {
	normalized := make([]string, len(tokens))
	for i, token := range tokens {
		normalized[i] = NormalizePackageName(token)
	}
	return normalized
}

// IsReservedName reports whether name can never be a package
func IsReservedName(name string) bool {
	return name == "" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
