//go:build plot
// +build plot

package halftone

import (
	"fmt"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type plttr struct {
	*plot.Plot
	nlines int
}

func newplttr(title string) *plttr {
	p, err := plot.New()
	if err != nil {
		panic(err)
	}
	p.Title.Text = title
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())
	return &plttr{Plot: p}
}

func (p *plttr) addCurve(lbl string, f func(x float64) float64) {
	xys := make(plotter.XYs, CorrRes)
	for i := range xys {
		xys[i].X = float64(i) / (CorrRes - 1)
		xys[i].Y = f(xys[i].X)
	}
	ln, err := plotter.NewLine(xys)
	if err != nil {
		panic(err)
	}
	ln.LineStyle.Width = vg.Points(1)
	ln.LineStyle.Color = plotutil.Color(p.nlines)
	p.nlines++

	p.Add(ln)
	p.Legend.Add(lbl, ln)
}

func (p *plttr) save(fname string) {
	if err := p.Save(8*vg.Inch, 8*vg.Inch, fname); err != nil {
		panic(err)
	}
}

func TestPlotResponse(t *testing.T) {
	h := proceduralHistogram(t)
	corr := NewCorrectionImage(LODRes)
	ComputeInverseR(corr, h)

	fwd := newplttr("response")
	inv := newplttr("correction")
	for lod := 0; lod < LODRes; lod += 5 {
		lod := lod
		lbl := fmt.Sprintf("lod %v", lod)
		fwd.addCurve(lbl, func(x float64) float64 { return Response(h, lod, x) })
		inv.addCurve(lbl, func(x float64) float64 {
			return float64(corr.GrayAt(int(x*(CorrRes-1)), lod).Y) / 255
		})
	}

	dir := t.TempDir()
	fwd.save(filepath.Join(dir, "response.png"))
	inv.save(filepath.Join(dir, "correction.png"))
	t.Logf("plots written to %s", dir)
}
