package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	SetConfigDir(t.TempDir())
	defer SetConfigDir("")
	t.Setenv(EnvSinkDir, "")
	t.Setenv(EnvLogLevel, "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.SinkDir != "" || c.LogLevel != "INFO" || c.Pretty {
		t.Errorf("Load() = %+v, want defaults", c)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	SetConfigDir(dir)
	defer SetConfigDir("")

	data := "sink_dir: /tmp/attachments\nlog_level: DEBUG\npretty: true\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		envSink  string
		envLevel string
		wantSink string
		wantLvl  string
	}{
		{"file only", "", "", "/tmp/attachments", "DEBUG"},
		{"env overrides sink", "/srv/out", "", "/srv/out", "DEBUG"},
		{"env overrides level", "", "WARN", "/tmp/attachments", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSinkDir, tt.envSink)
			t.Setenv(EnvLogLevel, tt.envLevel)

			c, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if c.SinkDir != tt.wantSink {
				t.Errorf("SinkDir = %q, want %q", c.SinkDir, tt.wantSink)
			}
			if c.LogLevel != tt.wantLvl {
				t.Errorf("LogLevel = %q, want %q", c.LogLevel, tt.wantLvl)
			}
			if !c.Pretty {
				t.Error("Pretty = false, want true")
			}
		})
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("sink_dir: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	SetConfigDir(dir)
	defer SetConfigDir("")

	want := &Config{SinkDir: "/data", LogLevel: "ERROR", Pretty: true}
	if err := want.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	path, _ := Path()
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != *want {
		t.Errorf("LoadFile() = %+v, want %+v", got, want)
	}
}
