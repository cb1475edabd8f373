package halftone

import (
	"bytes"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCorrectionTex(t *testing.T) {
	tests := []struct {
		mode Mode
		rows int
	}{
		{ToneCorrection, LODRes},
		{LODCorrection, 1},
	}
	for _, tt := range tests {
		m, err := BuildCorrectionTex(nil, Config{Mode: tt.mode})
		if err != nil {
			t.Fatalf("%v: %v", tt.mode, err)
		}
		if sz := m.Bounds().Size(); sz.X != CorrRes || sz.Y != tt.rows {
			t.Errorf("%v: expected %vx%v, have %v", tt.mode, CorrRes, tt.rows, sz)
		}
		t.Logf("%v: %v", tt.mode, m.Pix[:16])
	}
}

func TestBuildCorrectionTexProcedural(t *testing.T) {
	m, err := BuildCorrectionTex(nil, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// procedural responses reach 1 so every column is filled and increasing
	for lod := 0; lod < LODRes; lod++ {
		for x := 1; x < CorrRes; x++ {
			if m.GrayAt(x, lod).Y < m.GrayAt(x-1, lod).Y {
				t.Fatalf("lod %v column %v: correction decreased", lod, x)
			}
		}
		if v := m.GrayAt(CorrRes/2, lod).Y; v < 64 || v > 192 {
			t.Errorf("lod %v: expected mid tone near the middle, have %v", lod, v)
		}
	}
}

func TestBuildCorrectionHistogram(t *testing.T) {
	m, h, err := BuildCorrection(nil, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if h.Samples != ProceduralRes*ProceduralRes {
		t.Errorf("expected %v samples, have %v", ProceduralRes*ProceduralRes, h.Samples)
	}

	// texture is the inverse of the returned histogram
	want := NewCorrectionImage(LODRes)
	ComputeInverseR(want, h)
	if !bytes.Equal(m.Pix, want.Pix) {
		t.Error("correction does not match histogram")
	}
}

func TestBuildCorrectionTexErrors(t *testing.T) {
	if _, err := BuildCorrectionTex(image.NewGray(image.Rect(0, 0, 4, 0)), DefaultConfig()); err != ErrEmptyPattern {
		t.Errorf("expected ErrEmptyPattern, have %v", err)
	}
	if _, err := BuildCorrectionTex(nil, Config{Mode: Mode(9)}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBuildCorrectionTexDebug(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	cfg := Config{
		Mode:    ToneCorrection,
		Debug:   true,
		DumpDir: filepath.Join(dir, "dump"),
		Logger:  log.New(&buf, "", 0),
	}
	if _, err := BuildCorrectionTex(nil, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "built tone correction") {
		t.Errorf("expected build log, have %q", buf.String())
	}
	for _, name := range []string{"halftone_histogram.png", "halftone_correction.png"} {
		m, err := LoadPattern(filepath.Join(cfg.DumpDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if m.Bounds().Dy() != LODRes {
			t.Errorf("%s: expected %v rows, have %v", name, LODRes, m.Bounds().Dy())
		}
	}

	cfg.Mode = LODCorrection
	if _, err := BuildCorrectionTex(nil, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cfg.DumpDir, "halftone_forward.png")); err != nil {
		t.Error(err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"tone", ToneCorrection, false},
		{"", ToneCorrection, false},
		{"lod", LODCorrection, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		m, err := ParseMode(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseMode(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.err && m != tt.want {
			t.Errorf("ParseMode(%q): expected %v, have %v", tt.in, tt.want, m)
		}
	}
	if s := Mode(7).String(); s != "Mode(7)" {
		t.Errorf("expected Mode(7), have %s", s)
	}
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("HALFTONE_MODE", "lod")
	t.Setenv("HALFTONE_DEBUG", "true")
	t.Setenv("HALFTONE_DUMP_DIR", "/tmp/halftone")
	cfg, err := EnvConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != LODCorrection || !cfg.Debug || cfg.DumpDir != "/tmp/halftone" {
		t.Errorf("unexpected config %+v", cfg)
	}

	t.Setenv("HALFTONE_DEBUG", "maybe")
	if _, err := EnvConfig(); err == nil {
		t.Error("expected error for invalid HALFTONE_DEBUG")
	}
}

func TestHistogramImage(t *testing.T) {
	h := spikeHistogram(10, 40)
	h.Row(3)[41] = 5
	m := HistogramImage(h)
	if v := m.GrayAt(40, 0).Y; v != 255 {
		t.Errorf("expected peak 255, have %v", v)
	}
	if v := m.GrayAt(41, 3).Y; v != 127 {
		t.Errorf("expected half peak 127, have %v", v)
	}
	if v := m.GrayAt(0, 0).Y; v != 0 {
		t.Errorf("expected empty bucket 0, have %v", v)
	}
}
