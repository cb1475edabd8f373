package halftone

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Mode selects which correction texture BuildCorrectionTex produces.
type Mode int

const (
	// ToneCorrection builds the inverse response, CorrRes x LODRes.
	ToneCorrection Mode = iota

	// LODCorrection builds the forward response of the base LOD, CorrRes x 1.
	LODCorrection
)

func (m Mode) String() string {
	switch m {
	case ToneCorrection:
		return "tone"
	case LODCorrection:
		return "lod"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode named by s, either "tone" or "lod".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tone", "":
		return ToneCorrection, nil
	case "lod":
		return LODCorrection, nil
	}
	return 0, fmt.Errorf("halftone: unknown mode %q", s)
}

// Config controls BuildCorrectionTex.
type Config struct {
	Mode Mode

	// Debug logs build time and writes histogram and correction images to DumpDir.
	Debug   bool
	DumpDir string

	// Logger receives diagnostics; nil uses log.Default().
	Logger *log.Logger
}

// DefaultConfig returns a tone correction config with debugging off.
func DefaultConfig() Config {
	return Config{Mode: ToneCorrection, DumpDir: "."}
}

// EnvConfig returns DefaultConfig overridden by HALFTONE_MODE, HALFTONE_DEBUG
// and HALFTONE_DUMP_DIR.
func EnvConfig() (Config, error) {
	cfg := DefaultConfig()
	if s, ok := os.LookupEnv("HALFTONE_MODE"); ok {
		m, err := ParseMode(s)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	if s, ok := os.LookupEnv("HALFTONE_DEBUG"); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return cfg, fmt.Errorf("halftone: HALFTONE_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if s := os.Getenv("HALFTONE_DUMP_DIR"); s != "" {
		cfg.DumpDir = s
	}
	return cfg, nil
}

func (cfg Config) logger() *log.Logger {
	if cfg.Logger == nil {
		return log.Default()
	}
	return cfg.Logger
}

// BuildCorrectionTex measures pattern, or the procedural pattern if nil, and
// returns its correction texture for cfg.Mode.
func BuildCorrectionTex(pattern image.Image, cfg Config) (*image.Gray, error) {
	m, _, err := BuildCorrection(pattern, cfg)
	return m, err
}

// BuildCorrection is BuildCorrectionTex that also returns the histogram the
// texture was computed from.
func BuildCorrection(pattern image.Image, cfg Config) (*image.Gray, *Histogram, error) {
	epoch := time.Now()

	h := new(Histogram)
	if err := BuildPatternHistogram(h, pattern); err != nil {
		return nil, nil, err
	}

	var m *image.Gray
	switch cfg.Mode {
	case ToneCorrection:
		m = NewCorrectionImage(LODRes)
		ComputeInverseR(m, h)
	case LODCorrection:
		m = NewCorrectionImage(1)
		ComputeForwardR(m, h)
	default:
		return nil, nil, fmt.Errorf("halftone: unknown mode %v", cfg.Mode)
	}

	if cfg.Debug {
		lg := cfg.logger()
		lg.Printf("halftone: built %v correction from %v samples per lod in %s", cfg.Mode, h.Samples, time.Since(epoch))
		if err := cfg.dump(h, m); err != nil {
			lg.Printf("halftone: debug dump: %v", err)
		}
	}
	return m, h, nil
}

func (cfg Config) dump(h *Histogram, m *image.Gray) error {
	dir := cfg.DumpDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := SavePNG(filepath.Join(dir, "halftone_histogram.png"), HistogramImage(h)); err != nil {
		return err
	}
	name := "halftone_correction.png"
	if cfg.Mode == LODCorrection {
		name = "halftone_forward.png"
	}
	return SavePNG(filepath.Join(dir, name), m)
}

// HistogramImage returns h as a Buckets x LODRes image with each row scaled
// so its fullest bucket is white.
func HistogramImage(h *Histogram) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, Buckets, LODRes))
	for lod := 0; lod < LODRes; lod++ {
		row := h.Row(lod)
		var peak uint32
		for _, c := range row {
			if c > peak {
				peak = c
			}
		}
		if peak == 0 {
			continue
		}
		for i, c := range row {
			m.SetGray(i, lod, color.Gray{Y: uint8(uint64(c) * 255 / uint64(peak))})
		}
	}
	return m
}
