//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"waterseg-bot/internal/domain/entity"
)

// LabelLoader читает разметку через OpenCV в оттенках серого и приводит её к размеру модели.
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

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		l.log.Warn().Str("path", path).Msg("ground truth is not decodable, skipping")
		return nil, false, nil
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(l.width, l.height), 0, 0, gocv.InterpolationLinear)

	return &entity.GroundTruthMask{
		Width:  l.width,
		Height: l.height,
		Pixels: append([]uint8(nil), resized.ToBytes()...),
	}, true, nil
}
