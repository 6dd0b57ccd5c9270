package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/mapproj/internal/config"
)

func writeTexture(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := range 32 {
		for x := range 64 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	path := filepath.Join(dir, "earth.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out); err == nil {
		t.Error("expected error without a command")
	}
	if err := run([]string{"bogus"}, &out); err == nil {
		t.Error("expected error for unknown command")
	}
	out.Reset()
	if err := run([]string{"help"}, &out); err != nil {
		t.Errorf("help: %v", err)
	}
	if !strings.Contains(out.String(), "render") {
		t.Errorf("usage lacks commands: %q", out.String())
	}
}

func TestRenderTexture(t *testing.T) {
	dir := t.TempDir()
	tex := writeTexture(t, dir)
	output := filepath.Join(dir, "ortho.png")

	var out bytes.Buffer
	err := run([]string{"render",
		"-projection", "orthographic",
		"-width", "48", "-height", "32",
		"-samples", "1",
		"-texture", tex,
		"-o", output,
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readPNG(t, output)
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("size %v", b)
	}
	r, g, _, _ := img.At(24, 16).RGBA()
	if r>>8 != 200 || g>>8 != 40 {
		t.Errorf("center = %d,%d, want texture color", r>>8, g>>8)
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r>>8 != 128 {
		t.Errorf("corner = %d, want clear gray", r>>8)
	}
	if !strings.Contains(out.String(), "Orthographic") {
		t.Errorf("summary %q", out.String())
	}
}

func TestRenderLines(t *testing.T) {
	dir := t.TempDir()
	coast := filepath.Join(dir, "coast.geojson")
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
"geometry":{"type":"LineString","coordinates":[[-30,0],[0,0],[30,0]]}}]}`
	if err := os.WriteFile(coast, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "lines.png")

	var out bytes.Buffer
	err := run([]string{"render",
		"-projection", "stereographic",
		"-lines", "-graticule",
		"-coastline", coast,
		"-width", "64", "-height", "64",
		"-o", output,
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readPNG(t, output)
	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 222 {
		t.Errorf("corner = %d, want lines clear color", r>>8)
	}
	if !strings.Contains(out.String(), "Stereographic") {
		t.Errorf("summary %q", out.String())
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"bad projection", []string{"-projection", "mercator"}},
		{"missing texture", []string{"-texture", filepath.Join(dir, "none.png")}},
		{"missing coastline", []string{"-lines", "-coastline", filepath.Join(dir, "none.geojson")}},
		{"bad samples", []string{"-samples", "3"}},
		{"missing config", []string{"-config", filepath.Join(dir, "none.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "-o", filepath.Join(dir, "x.png")}, tt.args...)
			if err := run(args, &bytes.Buffer{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSample(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"sample", "0", "0"}, &out); err != nil {
		t.Fatalf("sample: %v", err)
	}
	text := out.String()
	for _, want := range []string{"gnomonic", "azimuthal", "orthographic", "stereographic", "x=+0.000000 y=+0.000000"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}

	out.Reset()
	if err := run([]string{"sample", "-projection", "gnomonic", "180", "0"}, &out); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !strings.Contains(out.String(), "invalid") {
		t.Errorf("antipode should be invalid under gnomonic:\n%s", out.String())
	}

	if err := run([]string{"sample", "1"}, &out); err == nil {
		t.Error("expected error for missing latitude")
	}
	if err := run([]string{"sample", "east", "0"}, &out); err == nil {
		t.Error("expected error for bad longitude")
	}
}

func TestRenderTextureLimit(t *testing.T) {
	dir := t.TempDir()
	tex := writeTexture(t, dir) // 64x32
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "graphics:\n  max_texture_size: 16\ndata:\n  texture: " + tex + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	scene, err := buildScene(cfg)
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}
	if w, h := scene.Texture.Size(); w != 16 || h != 8 {
		t.Errorf("texture from config limit = %dx%d, want 16x8", w, h)
	}

	var out bytes.Buffer
	err = run([]string{"render", "-config", cfgPath, "-max-texture", "32",
		"-width", "16", "-height", "16", "-o", filepath.Join(dir, "limit.png")}, &out)
	if err != nil {
		t.Fatalf("render with config limit: %v", err)
	}

	cfg.Graphics.MaxTextureSize = 0
	if scene, err = buildScene(cfg); err != nil {
		t.Fatalf("buildScene: %v", err)
	}
	if w, h := scene.Texture.Size(); w != 64 || h != 32 {
		t.Errorf("unlimited texture = %dx%d, want 64x32", w, h)
	}
}
