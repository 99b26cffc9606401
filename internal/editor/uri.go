package editor

import (
	"net/url"
	"strings"
)

// URI returns an obsidian:/// link opening notePath inside vaultPath.
func URI(vaultPath, notePath string) string {
	absolutePath := strings.TrimSuffix(vaultPath, "/") + "/" + strings.TrimPrefix(notePath, "/")
	// Obsidian resolves the note without its extension.
	absolutePath = strings.TrimSuffix(absolutePath, ".md")

	parts := strings.Split(absolutePath, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	encodedPath := strings.TrimPrefix(strings.Join(parts, "/"), "/")

	return "obsidian:///" + encodedPath
}
