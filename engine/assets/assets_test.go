package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

func TestTypeForPath(t *testing.T) {
	cases := map[string]AssetType{
		"shaders/unlit.hlsl":  AssetShader,
		"shaders/full.vert":   AssetShader,
		"shaders/full.frag":   AssetShader,
		"shaders/out.spv":     AssetShader,
		"textures/albedo.png": AssetImage,
		"textures/photo.jpeg": AssetImage,
		"scene/level.toml":    AssetNone,
		"readme":              AssetNone,
	}
	for path, want := range cases {
		if got := TypeForPath(path); got != want {
			t.Errorf("TypeForPath(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestLoadShaderFromDisk(t *testing.T) {
	dir := t.TempDir()
	src := "float4 PSMain() : SV_Target { return 1; }"
	path := filepath.Join(dir, "flat.hlsl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	desc, err := m.LoadShader(path)
	if err != nil {
		t.Fatalf("LoadShader: %v", err)
	}
	if desc.Source != src {
		t.Errorf("source round-trip mismatch")
	}
	if desc.SourceType != metadata.ShaderSourceHLSL {
		t.Errorf("source type = %d, want HLSL", desc.SourceType)
	}
	if desc.Label != "flat.hlsl" {
		t.Errorf("label = %q", desc.Label)
	}

	if _, err := m.LoadShader(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("unrecognized extension accepted")
	}
}

func TestLoadShaderStageFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.vert")
	if err := os.WriteFile(path, []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	desc, err := m.LoadShader(path)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Stage != metadata.ShaderStageVertex {
		t.Errorf("stage = %d, want vertex", desc.Stage)
	}
	if desc.EntryPoint != "main" {
		t.Errorf("entry point = %q, want main", desc.EntryPoint)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 100), B: 7, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "tiny.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	data, err := m.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if data.Width != 4 || data.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 4x2", data.Width, data.Height)
	}
	if len(data.Pixels) != 4*2*4 {
		t.Fatalf("pixel bytes = %d, want %d", len(data.Pixels), 4*2*4)
	}
	// Pixel (2,1): R=100, G=100, B=7, A=255.
	off := (1*4 + 2) * 4
	if data.Pixels[off] != 100 || data.Pixels[off+1] != 100 || data.Pixels[off+2] != 7 || data.Pixels[off+3] != 255 {
		t.Errorf("pixel (2,1) = %v", data.Pixels[off:off+4])
	}

	desc := data.TextureDesc("tiny")
	if desc.MipLevels != metadata.FullMipLevels(4, 2) {
		t.Errorf("mip levels = %d", desc.MipLevels)
	}
	if desc.Format != metadata.TextureFormatRGBA8Unorm {
		t.Errorf("format = %d", desc.Format)
	}
}

func TestWatchIndexesAndInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unlit.hlsl")
	if err := os.WriteFile(path, []byte("// v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	var mu sync.Mutex
	var invalidated []Entry
	m.SetInvalidateFunc(func(e Entry) {
		mu.Lock()
		invalidated = append(invalidated, e)
		mu.Unlock()
	})

	if err := m.Watch(dir); err != nil {
		t.Fatal(err)
	}
	entry, ok := m.Entry(path)
	if !ok {
		t.Fatal("file not indexed after Watch")
	}
	if entry.Type != AssetShader || entry.Generation != 0 {
		t.Fatalf("entry = %+v", entry)
	}

	if err := os.WriteFile(path, []byte("// v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		n := len(invalidated)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no invalidation within 3s of the write")
		}
		time.Sleep(10 * time.Millisecond)
	}

	entry, _ = m.Entry(path)
	if entry.Generation == 0 {
		t.Error("generation did not advance on write")
	}

	if _, err := m.Reload(path); err != nil {
		t.Errorf("Reload after invalidation: %v", err)
	}
	if _, err := m.Reload(filepath.Join(dir, "ghost.hlsl")); err == nil {
		t.Error("Reload of unindexed path succeeded")
	}
}
