package models

// RootFolder is the sentinel naming the workspace root.
const RootFolder = "/"

// Settings is the single record persisted between sessions.
type Settings struct {
	LastSelectedFolder string `json:"lastSelectedFolder"`
}

// DefaultSettings is used when nothing has been persisted yet.
func DefaultSettings() Settings {
	return Settings{LastSelectedFolder: RootFolder}
}

// Draft is the user input captured by the dialog. It is consumed once by
// a commit and then discarded.
type Draft struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	TotalPages int    `json:"totalPages"`
	Folder     string `json:"folder"`
}

// Created describes a note written to the vault.
type Created struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Folder string `json:"folder"`
}
