package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

const dataURIPrefix = "data:image/png;base64,"

// groundTruthThreshold пиксель разметки ярче этого значения считается водой.
const groundTruthThreshold = 127

var (
	colorRGB     = color.RGBA{R: 0x00, G: 0xe0, B: 0xff, A: 0xff}
	colorOverlay = color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}
	colorTruth   = color.RGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff}
)

// ResultCompositor собирает визуализацию предсказания: RGB, подсветку,
// разметку (если есть) и маску.
type ResultCompositor struct {
	cfg      entity.PipelineConfig
	labels   port.GroundTruthLoader
	renderer port.CompositeRenderer
	log      zerolog.Logger
}

// NewResultCompositor создаёт компоновщик результата.
func NewResultCompositor(cfg entity.PipelineConfig, labels port.GroundTruthLoader, renderer port.CompositeRenderer, log zerolog.Logger) *ResultCompositor {
	return &ResultCompositor{
		cfg:      cfg,
		labels:   labels,
		renderer: renderer,
		log:      log.With().Str("component", "compositor").Logger(),
	}
}

// Compose бинаризует выход модели и рисует итоговую картинку.
// Входной тензор только читается.
func (c *ResultCompositor) Compose(ctx context.Context, input, output *entity.Tensor, rasterPath string) (*entity.Composite, error) {
	start := time.Now()

	h, w, err := c.checkShapes(input, output)
	if err != nil {
		return nil, err
	}

	mask := entity.NewPredictionMask(w, h, output.Channel(0, 0), float32(c.cfg.MaskThreshold))
	rgb := displayRGB(input, c.cfg.DisplayChannels)
	overlay := blendOverlay(rgb, mask, c.cfg.BlendBase, c.cfg.BlendHighlight)

	truth, hasTruth, err := c.labels.Load(ctx, c.LabelPath(rasterPath))
	if err != nil {
		return nil, fmt.Errorf("load ground truth: %w", err)
	}

	panels := []entity.Panel{
		{Title: "RGB", TitleColor: colorRGB, Image: rgb.Image()},
		{Title: "Overlay", TitleColor: colorOverlay, Image: overlay.Image()},
	}
	var metrics *entity.MaskMetrics
	if hasTruth {
		panels = append(panels, entity.Panel{Title: "Ground Truth", TitleColor: colorTruth, Image: truth.Gray()})
		if truth.Width == w && truth.Height == h {
			m := mask.Compare(truth.Binary(groundTruthThreshold))
			metrics = &m
		} else {
			c.log.Warn().Int("width", truth.Width).Int("height", truth.Height).Msg("ground truth size differs from mask, metrics skipped")
		}
	}
	panels = append(panels, entity.Panel{Title: "Predicted Mask", TitleColor: colorOverlay, Image: mask.Gray()})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	png, err := c.renderer.Render(ctx, panels)
	if err != nil {
		return nil, fmt.Errorf("render composite: %w", err)
	}

	c.log.Debug().
		Str("raster", rasterPath).
		Int("panels", len(panels)).
		Float64("water_fraction", mask.Fraction()).
		Dur("elapsed", time.Since(start)).
		Msg("composite rendered")

	return &entity.Composite{
		EncodedImage: EncodeDataURI(png),
		PNG:          png,
		Mask:         mask,
		Panels:       panels,
		Metrics:      metrics,
	}, nil
}

// LabelPath возвращает путь к разметке: <LabelsDir>/<имя снимка без расширения><LabelExt>.
func (c *ResultCompositor) LabelPath(rasterPath string) string {
	base := filepath.Base(rasterPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.cfg.LabelsDir, base+c.cfg.LabelExt)
}

func (c *ResultCompositor) checkShapes(input, output *entity.Tensor) (h, w int, err error) {
	h, w, ok := input.Spatial()
	if !ok || input.Shape[0] < 1 || int(input.Shape[1]) <= maxChannel(c.cfg.DisplayChannels) {
		return 0, 0, fmt.Errorf("unexpected input tensor shape %v", input.Shape)
	}

	expected := []int64{1, 1, int64(h), int64(w)}
	oh, ow, ok := output.Spatial()
	if !ok || output.Shape[0] < 1 || output.Shape[1] < 1 || oh != h || ow != w {
		return 0, 0, &entity.ShapeMismatchError{Expected: expected, Actual: output.Shape}
	}
	if err := output.Validate(); err != nil {
		return 0, 0, &entity.ShapeMismatchError{Expected: expected, Actual: output.Shape}
	}
	return h, w, nil
}

func maxChannel(chs [3]int) int {
	return max(chs[0], chs[1], chs[2])
}

// EncodeDataURI упаковывает PNG в строку data:image/png;base64,...
func EncodeDataURI(png []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png)
}

// rgbImage картинка в формате HWC со значениями в [0, 1].
type rgbImage struct {
	width  int
	height int
	pix    []float64
}

// displayRGB собирает RGB из трёх каналов тензора и растягивает его min-max
// сразу по всем трём каналам, чтобы сохранить баланс цветов.
// Плоская картинка (max == min) становится чёрной.
func displayRGB(input *entity.Tensor, chs [3]int) *rgbImage {
	h, w, _ := input.Spatial()
	img := &rgbImage{width: w, height: h, pix: make([]float64, 3*w*h)}
	for k, ch := range chs {
		plane := input.Channel(0, ch)
		for i, v := range plane {
			img.pix[3*i+k] = float64(v)
		}
	}

	lo, hi := floats.Min(img.pix), floats.Max(img.pix)
	floats.AddConst(-lo, img.pix)
	if hi > lo {
		floats.Scale(1/(hi-lo), img.pix)
	}
	return img
}

// blendOverlay подсвечивает пиксели маски красным: base*rgb + highlight*(1, 0, 0).
// Вне маски пиксели копируются без изменений. Исходная картинка не меняется.
func blendOverlay(src *rgbImage, mask *entity.PredictionMask, base, highlight float64) *rgbImage {
	out := &rgbImage{width: src.width, height: src.height, pix: append([]float64(nil), src.pix...)}
	for i, water := range mask.Pixels {
		if !water {
			continue
		}
		px := out.pix[3*i : 3*i+3]
		px[0] = base*px[0] + highlight
		px[1] = base * px[1]
		px[2] = base * px[2]
	}
	return out
}

// Image переводит картинку в 8-битный RGBA.
func (r *rgbImage) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i := 0; i < r.width*r.height; i++ {
		img.Pix[4*i] = toByte(r.pix[3*i])
		img.Pix[4*i+1] = toByte(r.pix[3*i+1])
		img.Pix[4*i+2] = toByte(r.pix[3*i+2])
		img.Pix[4*i+3] = 0xff
	}
	return img
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}
