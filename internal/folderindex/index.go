// Package folderindex derives the destination folders offered by the note
// dialog from the workspace node list.
package folderindex

import (
	"slices"

	"github.com/starford/fansub/internal/models"
)

// Folders returns the paths of the folder nodes, in the order given.
func Folders(nodes []models.Node) []string {
	var out []string
	for _, n := range nodes {
		if n.IsFolder() {
			out = append(out, n.Path)
		}
	}
	return out
}

// Choices is Folders with a single root entry standing in for an empty list.
func Choices(nodes []models.Node) []string {
	folders := Folders(nodes)
	if len(folders) == 0 {
		return []string{models.RootFolder}
	}
	return folders
}

// InitialSelection returns last when it is still one of choices, otherwise
// the first choice.
func InitialSelection(choices []string, last string) string {
	if len(choices) == 0 {
		return models.RootFolder
	}
	if slices.Contains(choices, last) {
		return last
	}
	return choices[0]
}
