package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

// PlotRenderer раскладывает панели в один ряд через gonum/plot и сохраняет PNG.
type PlotRenderer struct {
	Width     vg.Length
	Height    vg.Length
	DPI       int
	TitleSize vg.Length
}

// NewPlotRenderer создаёт рендерер холста width x height дюймов.
func NewPlotRenderer(widthInch, heightInch float64, dpi int) *PlotRenderer {
	return &PlotRenderer{
		Width:     vg.Length(widthInch) * vg.Inch,
		Height:    vg.Length(heightInch) * vg.Inch,
		DPI:       dpi,
		TitleSize: vg.Points(22),
	}
}

// Render рисует панели слева направо в порядке среза.
func (r *PlotRenderer) Render(ctx context.Context, panels []entity.Panel) ([]byte, error) {
	if len(panels) == 0 {
		return nil, errors.New("no panels to render")
	}

	row := make([]*plot.Plot, len(panels))
	for i, panel := range panels {
		if panel.Image == nil {
			return nil, fmt.Errorf("panel %q has no image", panel.Title)
		}
		row[i] = r.panelPlot(panel)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	cells := plot.Align([][]*plot.Plot{row}, tiles, draw.New(canvas))
	for i, p := range row {
		p.Draw(cells[0][i])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PlotRenderer) panelPlot(panel entity.Panel) *plot.Plot {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Color = panel.TitleColor
	p.Title.TextStyle.Font.Size = r.TitleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.HideAxes()

	b := panel.Image.Bounds()
	p.Add(plotter.NewImage(panel.Image, 0, 0, float64(b.Dx()), float64(b.Dy())))
	return p
}

var _ port.CompositeRenderer = (*PlotRenderer)(nil)
