package internal

import (
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/fansub/internal/editor"
	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/settings"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// DefaultSQLitePath is used by the sqlite settings backend when no path is set.
const DefaultSQLitePath = "./fansub.db"

var extensionRe = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	Settings SettingsConfig    `yaml:"settings"`
	Note     NoteConfig        `yaml:"note"`
	Editor   EditorConfig      `yaml:"editor"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if err := c.Note.Validate(); err != nil {
		return err
	}
	if err := c.Editor.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SettingsConfig selects where the remembered folder is kept.
//
// Backend "file" stores JSON at Path relative to the vault root;
// backend "sqlite" treats Path as the database file.
type SettingsConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Validate validates the settings configuration.
func (c *SettingsConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = settings.BackendFile
	}
	switch {
	case c.Backend == settings.BackendFile && c.Path == "":
		c.Path = settings.DefaultDataPath
	case c.Backend == settings.BackendSQLite && (c.Path == "" || c.Path == settings.DefaultDataPath):
		c.Path = DefaultSQLitePath
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(settings.BackendFile, settings.BackendSQLite)),
		validation.Field(&c.Path, validation.Required),
	)
}

// NoteConfig holds the fixed parts of generated notes.
type NoteConfig struct {
	Tag             string `yaml:"tag"`
	TranslatedTitle string `yaml:"translated_title"`
	HeadingPrefix   string `yaml:"heading_prefix"`
	Extension       string `yaml:"extension"`
}

// Validate validates the note configuration.
func (c *NoteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Tag, validation.Required),
		validation.Field(&c.HeadingPrefix, validation.Required),
		validation.Field(&c.Extension, validation.Required, validation.Match(extensionRe)),
	)
}

// Layout converts the config into a notegen layout.
func (c *NoteConfig) Layout() notegen.Layout {
	return notegen.Layout{
		Tag:             c.Tag,
		TranslatedTitle: c.TranslatedTitle,
		HeadingPrefix:   c.HeadingPrefix,
		Extension:       c.Extension,
	}
}

// EditorConfig controls what happens after a note is created.
//
// Mode is one of:
//   - "none": nothing is opened.
//   - "uri" (default): an obsidian:/// link is printed.
//   - "command": Command (or $VISUAL/$EDITOR) is run with the note path.
type EditorConfig struct {
	Mode    string   `yaml:"mode"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Validate validates the editor configuration.
func (c *EditorConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = editor.ModeURI
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(editor.ModeNone, editor.ModeURI, editor.ModeCommand)),
	)
}

// AuthConfig holds authentication configuration for the HTTP API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	layout := notegen.DefaultLayout()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		Settings: SettingsConfig{
			Backend: settings.BackendFile,
			Path:    settings.DefaultDataPath,
		},
		Note: NoteConfig{
			Tag:             layout.Tag,
			TranslatedTitle: layout.TranslatedTitle,
			HeadingPrefix:   layout.HeadingPrefix,
			Extension:       layout.Extension,
		},
		Editor: EditorConfig{
			Mode: editor.ModeURI,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
