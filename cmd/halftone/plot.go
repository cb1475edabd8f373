package main

import (
	"fmt"
	"image"
	"path/filepath"

	"dasa.cc/npr/halftone"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// plotLODs are the LOD rows drawn by plotCurves.
var plotLODs = []int{0, halftone.LODRes / 2, halftone.LODRes - 1}

// plotCurves writes plots of the response of h and of the rows of corr to
// response.png and correction_curves.png in dir.
func plotCurves(dir string, h *halftone.Histogram, corr *image.Gray) error {
	fwd, err := newPlot("response", "tone", "white fraction")
	if err != nil {
		return err
	}
	inv, err := newPlot("correction", "tone", "threshold")
	if err != nil {
		return err
	}

	rows := corr.Bounds().Dy()
	for i, lod := range plotLODs {
		lbl := fmt.Sprintf("lod %v", lod)
		resp := make(plotter.XYs, halftone.CorrRes)
		for x := range resp {
			resp[x].X = float64(x) / (halftone.CorrRes - 1)
			resp[x].Y = halftone.Response(h, lod, resp[x].X)
		}
		if err := addLine(fwd, i, lbl, resp); err != nil {
			return err
		}

		if lod >= rows {
			continue
		}
		row := make(plotter.XYs, halftone.CorrRes)
		for x := range row {
			row[x].X = float64(x) / (halftone.CorrRes - 1)
			row[x].Y = float64(corr.GrayAt(x, lod).Y) / 255
		}
		if err := addLine(inv, i, lbl, row); err != nil {
			return err
		}
	}

	if err := fwd.Save(8*vg.Inch, 8*vg.Inch, filepath.Join(dir, "response.png")); err != nil {
		return err
	}
	return inv.Save(8*vg.Inch, 8*vg.Inch, filepath.Join(dir, "correction_curves.png"))
}

func newPlot(title, x, y string) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())
	return p, nil
}

func addLine(p *plot.Plot, i int, lbl string, xys plotter.XYs) error {
	ln, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	ln.LineStyle.Width = vg.Points(2)
	ln.LineStyle.Color = plotutil.Color(i)
	p.Add(ln)
	p.Legend.Add(lbl, ln)
	return nil
}
