// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the note generator to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/fansub/internal/apperr"
	"github.com/starford/fansub/internal/editor"
	"github.com/starford/fansub/internal/noteservice"
)

// Server wraps the MCP server with the fansub tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *noteservice.Service
	vault  string
	logger *slog.Logger
}

// New creates a new MCP server with all tools registered. vault is the
// absolute vault root used to build obsidian:/// links.
func New(svc *noteservice.Service, vault string, logger *slog.Logger) *Server {
	s := &Server{svc: svc, vault: vault, logger: logger}

	s.mcp = server.NewMCPServer(
		"Fansub",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List the vault folders a translation note can be created in, "+
			"and the folder that would be preselected (the last one used)."),
	), s.listFolders)

	s.mcp.AddTool(mcp.NewTool("create_translation_note",
		mcp.WithDescription("Create a translation note with one heading per page. "+
			"Read the template first via get_note_template or the "+NoteTemplateURI+" resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title, also used as the file name")),
		mcp.WithString("author", mcp.Description("Author of the original work")),
		mcp.WithNumber("total_pages", mcp.Required(), mcp.Description("Number of pages, greater than 0")),
		mcp.WithString("folder", mcp.Description("Destination folder from list_folders (default: last used)")),
	), s.createTranslationNote)

	s.mcp.AddTool(mcp.NewTool("list_translation_notes",
		mcp.WithDescription("List the translation notes already in the vault with their page counts."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listTranslationNotes)

	s.mcp.AddTool(mcp.NewTool("get_note_template",
		mcp.WithDescription("Returns the template translation notes are generated from."),
	), s.getNoteTemplate)

	s.mcp.AddResource(
		mcp.NewResource(NoteTemplateURI, "Translation Note Template",
			mcp.WithResourceDescription("Shape of the notes created by create_translation_note."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteTemplateResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listFolders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.svc.Folders(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(struct {
		Folders  []string `json:"folders"`
		Selected string   `json:"selected"`
	}{list.Folders, list.Selected})
}

type createdNote struct {
	Path string `json:"path"`
	URI  string `json:"uri"`
}

func (s *Server) createTranslationNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// total_pages is passed through as typed so the generator's page
	// validation decides, whatever JSON type the client sent.
	pages, ok := req.GetArguments()["total_pages"]
	if !ok {
		return mcp.NewToolResultError(apperr.ErrInvalidPageCount.Error()), nil
	}

	note, err := s.svc.CreateNote(ctx, noteservice.NoteInput{
		Title:      title,
		Author:     req.GetString("author", ""),
		TotalPages: noteservice.PagesText(pages),
		Folder:     req.GetString("folder", ""),
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrInvalidPageCount) && !errors.Is(err, apperr.ErrAlreadyExists) && !errors.Is(err, apperr.ErrInvalidPath) {
			s.logger.Error("mcp create failed", slog.String("title", title), slog.String("error", err.Error()))
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(createdNote{Path: note.Path, URI: editor.URI(s.vault, note.Path)})
}

func (s *Server) listTranslationNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.svc.Catalog(ctx, req.GetString("folder", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entries)
}

func (s *Server) getNoteTemplate(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteTemplate(s.svc.Layout())), nil
}

func (s *Server) readNoteTemplateResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      NoteTemplateURI,
			MIMEType: "text/markdown",
			Text:     NoteTemplate(s.svc.Layout()),
		},
	}, nil
}
