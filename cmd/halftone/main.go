// Command halftone builds tone correction textures for halftone patterns.
//
// The pattern is read from flag pattern, or procedural dots are used if it is
// empty. The correction texture is written to the out directory along with
// any of the optional outputs:
//
//   halftone -pattern=dots.png -preview=4 -interp=NearestNeighbor
//   halftone -mode=lod -plot
//   halftone -render=photo.png -w=1024 -h=768 -scale=1.5
//   halftone -repl
//
// Set -debug to log build time and dump histogram images next to the output.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"dasa.cc/npr/halftone"

	"github.com/nfnt/resize"
)

var (
	flagPattern = flag.String("pattern", "", "pattern texture (png or jpeg); procedural dots if empty.")
	flagMode    = flag.String("mode", "tone", "correction to build; tone or lod.")
	flagOut     = flag.String("out", "./out", "directory to place generated images.")
	flagDebug   = flag.Bool("debug", false, "log build time and dump histogram images to out.")
	flagPreview = flag.Int("preview", 0, "also write the correction scaled up by this factor.")
	flagInterp  = flag.String("interp", "Bilinear", "interpolation to use. NearestNeighbor, Bilinear, Bicubic, MitchellNetravali, Lanczos2, Lanczos3.")
	flagPlot    = flag.Bool("plot", false, "write response and correction curves to out.")
	flagRender  = flag.String("render", "", "tone image to screen with the correction.")
	flagWidth   = flag.Int("w", 0, "render width; tone image width if 0.")
	flagHeight  = flag.Int("h", 0, "render height; tone image height if 0.")
	flagScale   = flag.Float64("scale", 1, "render pattern zoom; each octave doubles pattern frequency.")
	flagPeriod  = flag.Float64("period", halftone.DefaultPeriod, "render pattern tile size in pixels.")
	flagREPL    = flag.Bool("repl", false, "inspect correction and response interactively.")

	interp resize.InterpolationFunction
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	flag.PrintDefaults()
}

func init() {
	flag.Usage = usage
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	var err error
	if interp, err = parseInterp(*flagInterp); err != nil {
		flag.Usage()
		log.Fatalf("\nReceived %v\nSee usage above.", err)
	}

	mode, err := halftone.ParseMode(*flagMode)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	var pattern image.Image
	if *flagPattern != "" {
		if pattern, err = halftone.LoadPattern(*flagPattern); err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll(*flagOut, 0755); err != nil {
		log.Fatal(err)
	}

	cfg := halftone.DefaultConfig()
	cfg.Mode = mode
	cfg.Debug = *flagDebug
	cfg.DumpDir = *flagOut

	corr, hist, err := halftone.BuildCorrection(pattern, cfg)
	if err != nil {
		log.Fatal(err)
	}
	save("correction.png", corr)

	if *flagPreview > 0 {
		b := corr.Bounds()
		n := uint(*flagPreview)
		save("preview.png", resize.Resize(uint(b.Dx())*n, uint(b.Dy())*n, corr, interp))
	}

	if *flagPlot {
		if err := plotCurves(*flagOut, hist, corr); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote plots to %s", *flagOut)
	}

	screen := &halftone.Screen{
		Pattern:    pattern,
		Correction: corr,
		Period:     *flagPeriod,
		Scale:      *flagScale,
		Interp:     interp,
	}

	if *flagRender != "" {
		tone, err := halftone.LoadPattern(*flagRender)
		if err != nil {
			log.Fatal(err)
		}
		w, h := *flagWidth, *flagHeight
		if w == 0 {
			w = tone.Bounds().Dx()
		}
		if h == 0 {
			h = tone.Bounds().Dy()
		}
		m, err := screen.Render(tone, w, h)
		if err != nil {
			log.Fatal(err)
		}
		save("render.png", m)
	}

	if *flagREPL {
		if err := repl(hist, screen); err != nil {
			log.Fatal(err)
		}
	}
}

// parseInterp returns the resize interpolation named s. The Lanzcos spellings
// are accepted for older scripts.
func parseInterp(s string) (resize.InterpolationFunction, error) {
	switch s {
	case "NearestNeighbor":
		return resize.NearestNeighbor, nil
	case "Bilinear":
		return resize.Bilinear, nil
	case "Bicubic":
		return resize.Bicubic, nil
	case "MitchellNetravali":
		return resize.MitchellNetravali, nil
	case "Lanczos2", "Lanzcos2":
		return resize.Lanczos2, nil
	case "Lanczos3", "Lanzcos3":
		return resize.Lanczos3, nil
	}
	return 0, fmt.Errorf("invalid interp %q", s)
}

func save(name string, m image.Image) {
	p := filepath.Join(*flagOut, name)
	if err := halftone.SavePNG(p, m); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", p)
}
