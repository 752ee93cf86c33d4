package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.MinConfidenceThreshold != 0.3 {
		t.Errorf("min confidence = %v, want 0.3", cfg.MinConfidenceThreshold)
	}
	if len(cfg.OutputFormats) != 3 {
		t.Errorf("output formats = %v, want json, csv, md", cfg.OutputFormats)
	}
	if cfg.MaxFileSizeMB != 50 {
		t.Errorf("max file size = %d, want 50", cfg.MaxFileSizeMB)
	}
	if !cfg.OCREnabled {
		t.Error("OCR should be enabled by default")
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("OCR language = %q, want eng", cfg.OCRLanguage)
	}
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadFile() on a missing file should not error, got: %v", err)
	}
	if cfg.MinConfidenceThreshold != 0.3 {
		t.Errorf("min confidence = %v, want default 0.3", cfg.MinConfidenceThreshold)
	}
}

func TestLoadFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "min_confidence_threshold: 0.5\noutput_formats: [json, bib]\nocr_enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.MinConfidenceThreshold != 0.5 {
		t.Errorf("min confidence = %v, want 0.5", cfg.MinConfidenceThreshold)
	}
	if len(cfg.OutputFormats) != 2 || cfg.OutputFormats[1] != "bib" {
		t.Errorf("output formats = %v, want [json bib]", cfg.OutputFormats)
	}
	if cfg.OCREnabled {
		t.Error("ocr_enabled: false should be honored")
	}

	// Unset fields keep defaults
	if cfg.MaxFileSizeMB != 50 {
		t.Errorf("max file size = %d, want default 50", cfg.MaxFileSizeMB)
	}
}

func TestLoadFile_InvalidThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("min_confidence_threshold: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject a threshold above 1")
	}
}

func TestLoadFile_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("output_formats: [pdf]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile() should reject unknown formats")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error should name the bad format, got: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg := Default()
	cfg.MinConfidenceThreshold = 0.7
	cfg.TesseractPath = "/opt/tesseract/bin/tesseract"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.MinConfidenceThreshold != 0.7 {
		t.Errorf("min confidence = %v, want 0.7", loaded.MinConfidenceThreshold)
	}
	if loaded.TesseractPath != cfg.TesseractPath {
		t.Errorf("tesseract path = %q, want %q", loaded.TesseractPath, cfg.TesseractPath)
	}
}

func TestPath_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	want := filepath.Join("/tmp/xdg", ConfigDir, ConfigFile)
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/refs.jsonl"); got != filepath.Join(home, "refs.jsonl") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() should leave absolute paths alone, got %q", got)
	}
}
