package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

// clearEnv blanks every variable Load consults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range [][]string{supabaseURLVars, supabaseAnonVars, supabaseRoleVars} {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 8080 {
			t.Errorf("Load() port = %v, want 8080", cfg.Server.Port)
		}
		if cfg.Server.RequestTimeout != 30*time.Second {
			t.Errorf("Load() request timeout = %v, want 30s", cfg.Server.RequestTimeout)
		}
		if cfg.Storage.Type != StorageMemory {
			t.Errorf("Load() storage = %v, want %v", cfg.Storage.Type, StorageMemory)
		}
		if cfg.Site.Accent != theme.Purple.String() {
			t.Errorf("Load() accent = %v, want purple", cfg.Site.Accent)
		}
	})

	t.Run("env var port override", func(t *testing.T) {
		t.Setenv("HACKATHON_SERVER__PORT", "9000")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 9000 {
			t.Errorf("Load() port = %v, want 9000", cfg.Server.Port)
		}
	})

	t.Run("missing named file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Load() with a missing file should fail")
		}
	})
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DIR", "/var/lib/hackathon")

	path := writeConfig(t, `
server:
  port: 3000
  shutdown_timeout: 5s
storage:
  type: sqlite
  sqlite:
    path: ${DB_DIR}/site.db
site:
  accent: cyan
  content_path: ./content.yaml
  watch: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("port = %v, want 3000", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("shutdown timeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Storage.SQLite.Path != "/var/lib/hackathon/site.db" {
		t.Errorf("sqlite path = %v, want /var/lib/hackathon/site.db", cfg.Storage.SQLite.Path)
	}
	if cfg.Site.Accent != "cyan" {
		t.Errorf("accent = %v, want cyan", cfg.Site.Accent)
	}
	if !cfg.Site.Watch || cfg.Site.ContentPath != "./content.yaml" {
		t.Errorf("site = %+v", cfg.Site)
	}

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("HACKATHON_SITE__ACCENT", "green")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Site.Accent != "green" {
			t.Errorf("accent = %v, want green", cfg.Site.Accent)
		}
	})
}

func TestLoad_UnknownAccentKept(t *testing.T) {
	clearEnv(t)
	t.Setenv("HACKATHON_SITE__ACCENT", "chartreuse")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Site.Accent != "chartreuse" {
		t.Errorf("accent = %v, want chartreuse", cfg.Site.Accent)
	}
}

func TestLoad_SupabaseFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantURL  string
		wantKey  string
		wantType string
	}{
		{
			name:     "public names",
			env:      map[string]string{"PUBLIC_SUPABASE_URL": "https://a.supabase.co", "PUBLIC_SUPABASE_ANON_KEY": "anon"},
			wantURL:  "https://a.supabase.co",
			wantKey:  "anon",
			wantType: StorageSupabase,
		},
		{
			name:     "next public names",
			env:      map[string]string{"NEXT_PUBLIC_SUPABASE_URL": "https://b.supabase.co", "NEXT_PUBLIC_SUPABASE_ANON_KEY": "anon-b"},
			wantURL:  "https://b.supabase.co",
			wantKey:  "anon-b",
			wantType: StorageSupabase,
		},
		{
			name: "service role wins",
			env: map[string]string{
				"SUPABASE_URL":              "https://c.supabase.co",
				"SUPABASE_ANON_KEY":         "anon-c",
				"SUPABASE_SERVICE_ROLE_KEY": "service",
			},
			wantURL:  "https://c.supabase.co",
			wantKey:  "service",
			wantType: StorageSupabase,
		},
		{
			name:     "prefixed config wins",
			env:      map[string]string{"HACKATHON_STORAGE__SUPABASE__URL": "https://d.supabase.co", "SUPABASE_URL": "https://other.supabase.co", "HACKATHON_STORAGE__SUPABASE__ANON_KEY": "anon-d"},
			wantURL:  "https://d.supabase.co",
			wantKey:  "anon-d",
			wantType: StorageSupabase,
		},
		{
			name:     "url without key stays in memory",
			env:      map[string]string{"SUPABASE_URL": "https://e.supabase.co"},
			wantURL:  "https://e.supabase.co",
			wantType: StorageMemory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Storage.Supabase.URL != tt.wantURL {
				t.Errorf("url = %v, want %v", cfg.Storage.Supabase.URL, tt.wantURL)
			}
			if cfg.Storage.Supabase.Key() != tt.wantKey {
				t.Errorf("key = %v, want %v", cfg.Storage.Supabase.Key(), tt.wantKey)
			}
			if cfg.Storage.Type != tt.wantType {
				t.Errorf("type = %v, want %v", cfg.Storage.Type, tt.wantType)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Type: StorageMemory}}, false},
		{"bad port", Config{Server: ServerConfig{Port: 0}, Storage: StorageConfig{Type: StorageMemory}}, true},
		{"unknown storage", Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Type: "postgres"}}, true},
		{"sqlite without path", Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Type: StorageSQLite}}, true},
		{"supabase without key", Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Type: StorageSupabase, Supabase: SupabaseConfig{URL: "https://x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple substitution",
			input: "${TEST_VAR}",
			want:  "test-value",
		},
		{
			name:  "substitution in string",
			input: "prefix-${TEST_VAR}-suffix",
			want:  "prefix-test-value-suffix",
		},
		{
			name:  "no substitution",
			input: "plain-string",
			want:  "plain-string",
		},
		{
			name:  "undefined var",
			input: "${UNDEFINED_VAR}",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := substituteEnvVars(tt.input)
			if got != tt.want {
				t.Errorf("substituteEnvVars() = %v, want %v", got, tt.want)
			}
		})
	}
}
