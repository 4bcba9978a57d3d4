package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	t.Run("server defaults", func(t *testing.T) {
		if config.Server.Host != "localhost" {
			t.Errorf("expected host localhost, got %s", config.Server.Host)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected port 3000, got %d", config.Server.Port)
		}
	})

	t.Run("database defaults", func(t *testing.T) {
		if config.Database.Path != "trackshift.db" {
			t.Errorf("expected path trackshift.db, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 5 || config.Database.MaxIdleConns != 2 {
			t.Errorf("unexpected pool settings: %d/%d",
				config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		}
	})

	t.Run("dragdrop defaults", func(t *testing.T) {
		if config.DragDrop.DropMode != "move" {
			t.Errorf("expected drop mode move, got %s", config.DragDrop.DropMode)
		}
		if !config.DragDrop.ModifierInvert {
			t.Error("expected modifier invert enabled")
		}
		if config.DragDrop.RowHeight != 1.0 {
			t.Errorf("expected row height 1.0, got %v", config.DragDrop.RowHeight)
		}
		if config.DragDrop.PageSize != 100 {
			t.Errorf("expected page size 100, got %d", config.DragDrop.PageSize)
		}
	})

	t.Run("spotify redirect default", func(t *testing.T) {
		if config.Credentials.Spotify.RedirectURI != "http://localhost:3000/callback" {
			t.Errorf("unexpected redirect %s", config.Credentials.Spotify.RedirectURI)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "id"
client_secret = "secret"

[database]
path = "custom.db"

[dragdrop]
page_size = 25
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Credentials.Spotify.ClientID != "id" {
			t.Errorf("expected client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Database.Path != "custom.db" {
			t.Errorf("expected custom.db, got %s", config.Database.Path)
		}
		if config.DragDrop.PageSize != 25 {
			t.Errorf("expected page size 25, got %d", config.DragDrop.PageSize)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[credentials\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("written config does not parse: %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected port 3000, got %d", config.Server.Port)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected an error")
		}
	})
}
