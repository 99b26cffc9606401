package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/noteservice"
	"github.com/starford/fansub/internal/storage"
	"github.com/starford/fansub/internal/testutil"
)

func testServer(t *testing.T) (*Server, *storage.FS) {
	t.Helper()

	_, store := testutil.TestVault(t)
	st := testutil.TestSettings(t, store)
	gen := notegen.New(store, st, notegen.WithLogger(testutil.Logger()))
	svc := noteservice.NewService(store, st, gen, testutil.Logger())

	return New(svc, store.Root(), testutil.Logger()), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no in-process "call tool" helper, so the handlers are
	// invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_folders":
		result, err = srv.listFolders(ctx, req)
	case "create_translation_note":
		result, err = srv.createTranslationNote(ctx, req)
	case "list_translation_notes":
		result, err = srv.listTranslationNotes(ctx, req)
	case "get_note_template":
		result, err = srv.getNoteTemplate(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateTranslationNote(t *testing.T) {
	srv, store := testServer(t)
	if err := store.Write("Manga/.keep.md", []byte("")); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "create_translation_note", map[string]interface{}{
		"title":       "Ch1",
		"author":      "Ana",
		"total_pages": float64(3),
		"folder":      "Manga",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}

	var got createdNote
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Path != "Manga/Ch1.md" {
		t.Errorf("path = %q", got.Path)
	}
	if !strings.HasPrefix(got.URI, "obsidian:///") || !strings.HasSuffix(got.URI, "/Manga/Ch1") {
		t.Errorf("uri = %q", got.URI)
	}

	data, err := store.Read("Manga/Ch1.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "author: Ana\n") || !strings.HasSuffix(string(data), "## Pag 3\n\n") {
		t.Errorf("content = %q", data)
	}
}

func TestCreateTranslationNoteStringPages(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "create_translation_note", map[string]interface{}{
		"title":       "Ch2",
		"total_pages": "2",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	if _, err := store.Read("Ch2.md"); err != nil {
		t.Errorf("note not created at root: %v", err)
	}
}

func TestCreateTranslationNoteInvalidPages(t *testing.T) {
	srv, store := testServer(t)

	for _, pages := range []interface{}{float64(0), float64(-2), float64(2.5), "many"} {
		r := callTool(t, srv, "create_translation_note", map[string]interface{}{
			"title":       "Bad",
			"total_pages": pages,
		})
		if !r.IsError {
			t.Errorf("pages %v: expected error", pages)
		}
	}
	r := callTool(t, srv, "create_translation_note", map[string]interface{}{"title": "Bad"})
	if !r.IsError {
		t.Error("missing total_pages: expected error")
	}

	if _, err := store.Read("Bad.md"); err == nil {
		t.Error("invalid request created a note")
	}
}

func TestCreateTranslationNoteLargePageCount(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "create_translation_note", map[string]interface{}{
		"title":       "Big",
		"total_pages": float64(1000000),
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	data, err := store.Read("Big.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "## Pag 1000000\n\n") {
		t.Error("last page heading missing")
	}
}

func TestCreateTranslationNoteClash(t *testing.T) {
	srv, _ := testServer(t)
	args := map[string]interface{}{"title": "Ch1", "total_pages": float64(1)}

	if r := callTool(t, srv, "create_translation_note", args); r.IsError {
		t.Fatalf("first create failed: %s", resultText(r))
	}
	r := callTool(t, srv, "create_translation_note", args)
	if !r.IsError {
		t.Fatal("expected clash error")
	}
	if !strings.Contains(resultText(r), "already exists") {
		t.Errorf("error = %q", resultText(r))
	}
}

func TestListFolders(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "list_folders", map[string]interface{}{})
	if text := resultText(r); !strings.Contains(text, `"selected": "/"`) {
		t.Errorf("empty vault folders = %s", text)
	}

	_ = store.Write("Manga/a.md", []byte("a"))
	_ = store.Write("Manhwa/b.md", []byte("b"))
	r = callTool(t, srv, "list_folders", map[string]interface{}{})

	var got struct {
		Folders  []string `json:"folders"`
		Selected string   `json:"selected"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Folders) != 2 || got.Folders[0] != "Manga" || got.Folders[1] != "Manhwa" {
		t.Errorf("folders = %v", got.Folders)
	}
	if got.Selected != "Manga" {
		t.Errorf("selected = %q", got.Selected)
	}
}

func TestListTranslationNotes(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("plain.md", []byte("just text"))
	callTool(t, srv, "create_translation_note", map[string]interface{}{"title": "Ch1", "total_pages": float64(5)})

	r := callTool(t, srv, "list_translation_notes", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, `"path": "Ch1.md"`) || !strings.Contains(text, `"pages": 5`) {
		t.Errorf("list = %s", text)
	}
	if strings.Contains(text, "plain.md") {
		t.Errorf("untagged note listed: %s", text)
	}
}

func TestGetNoteTemplate(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "get_note_template", nil))
	for _, want := range []string{"`Manga/Ch1.md`", "translatedTitle: Empty", "## Pag 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("template missing %q", want)
		}
	}
}

func TestNoteTemplateResource(t *testing.T) {
	srv, _ := testServer(t)
	contents, err := srv.readNoteTemplateResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != NoteTemplateURI {
		t.Errorf("resource = %#v", contents[0])
	}
}
