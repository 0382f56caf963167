package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"patterns scene", "patterns", false},
		{"reflection scene", "reflection", false},
		{"glass scene", "glass", false},
		{"default-world scene", "default-world", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 40, 30, 3)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Camera.HSize() != 40 || s.Camera.VSize() != 30 {
				t.Errorf("Expected 40x30 camera, got %dx%d", s.Camera.HSize(), s.Camera.VSize())
			}
			if s.Camera.MaxDepth != 3 {
				t.Errorf("Expected max depth 3, got %d", s.Camera.MaxDepth)
			}
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := createOutputPath("output", "glass", at)

	expected := filepath.Join("output", "glass", "render_20240309_140507.png")
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})

	filename := filepath.Join(t.TempDir(), "nested", "dir", "out.png")
	if err := savePNG(filename, img); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, _, _, _ := decoded.At(1, 1).RGBA()
	if r != 0xffff {
		t.Errorf("Expected red pixel, got r=%d", r)
	}
}

func defaultConfig() *config.Config {
	return &config.Config{
		Port: 8080, Scene: "default", Width: 400, Height: 225,
		MaxDepth: 5, TileSize: 32, OutputDir: "output",
	}
}

func TestParseOptions(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseOptions([]string{"-scene", "glass", "-width", "64", "-depth", "2", "-sequential"}, defaultConfig(), &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if opts.scene != "glass" || opts.width != 64 || opts.height != 225 || opts.maxDepth != 2 {
		t.Errorf("Unexpected options %+v", opts)
	}
	if !opts.sequential {
		t.Error("Expected sequential rendering")
	}
	if opts.tileSize != 32 || opts.outputDir != "output" {
		t.Errorf("Expected config defaults for unset flags, got %+v", opts)
	}
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"negative depth", []string{"-depth", "-1"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := parseOptions(tt.args, defaultConfig(), &out); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseOptions_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := parseOptions([]string{"-help"}, defaultConfig(), &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "Usage: raytracer") {
		t.Errorf("Expected usage text, got %q", out.String())
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-list"}, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, info := range scene.List() {
		if !strings.Contains(out.String(), info.Name) {
			t.Errorf("Expected listing to contain %q", info.Name)
		}
	}
}

func TestRun_RendersPNG(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	args := []string{"-scene", "default-world", "-width", "12", "-height", "8", "-tile-size", "4", "-output", dir}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "default-world", "render_*.png"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected one rendered file, got %v", matches)
	}
	if !strings.Contains(out.String(), "Render saved as") {
		t.Errorf("Expected save message, got %q", out.String())
	}
}

func TestRun_UnknownScene(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-scene", "nope", "-output", t.TempDir()}, &out)
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
