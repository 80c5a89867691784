//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"waterseg-bot/internal/domain/entity"
)

// LabelLoader читает PNG разметку в оттенках серого и приводит её к размеру модели.
type LabelLoader struct {
	width  int
	height int
	log    zerolog.Logger
}

// NewLabelLoader создаёт загрузчик разметки под размер width x height.
func NewLabelLoader(width, height int, log zerolog.Logger) *LabelLoader {
	return &LabelLoader{
		width:  width,
		height: height,
		log:    log.With().Str("component", "labels").Logger(),
	}
}

// Load возвращает ok == false, если файла нет или его нельзя декодировать.
func (l *LabelLoader) Load(ctx context.Context, path string) (*entity.GroundTruthMask, bool, error) {
	_ = ctx
	exists, err := labelExists(path)
	if err != nil || !exists {
		return nil, false, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("ground truth is not decodable, skipping")
		return nil, false, nil
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	gray := &image.Gray{Pix: grayPixels(img), Stride: w, Rect: image.Rect(0, 0, w, h)}

	resized := resize.Resize(uint(l.width), uint(l.height), gray, resize.Bilinear)
	return &entity.GroundTruthMask{
		Width:  l.width,
		Height: l.height,
		Pixels: grayPixels(resized),
	}, true, nil
}
