// Package models defines the domain types for fansub.
package models

import "time"

// NodeKind tags a workspace node as a folder or a document.
type NodeKind int

const (
	NodeDocument NodeKind = iota
	NodeFolder
)

func (k NodeKind) String() string {
	if k == NodeFolder {
		return "folder"
	}
	return "document"
}

// Node is a single entry of the workspace tree. Path is vault-relative and
// always uses forward slashes.
type Node struct {
	Kind NodeKind `json:"kind"`
	Path string   `json:"path"`
}

// Folder returns a folder node for path.
func Folder(path string) Node { return Node{Kind: NodeFolder, Path: path} }

// Document returns a document node for path.
func Document(path string) Node { return Node{Kind: NodeDocument, Path: path} }

// IsFolder reports whether n is directory-like.
func (n Node) IsFolder() bool { return n.Kind == NodeFolder }

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
