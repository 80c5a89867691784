// Package vision масштабирует каналы и читает растровую разметку.
// Со сборочным тегом gocv работа идёт через OpenCV, без него через чистый Go.
package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"waterseg-bot/internal/domain/port"
)

var (
	_ port.ChannelResizer    = (*BilinearResizer)(nil)
	_ port.GroundTruthLoader = (*LabelLoader)(nil)
)

func checkSizes(n, srcW, srcH, dstW, dstH int) error {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return fmt.Errorf("invalid resize %dx%d -> %dx%d", srcW, srcH, dstW, dstH)
	}
	if n != srcW*srcH {
		return fmt.Errorf("channel has %d samples, want %d", n, srcW*srcH)
	}
	return nil
}

// labelExists различает «файла нет» и ошибку доступа.
func labelExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// grayPixels возвращает яркость картинки построчно.
func grayPixels(img image.Image) []uint8 {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && g.Stride == b.Dx() {
		return append([]uint8(nil), g.Pix[:b.Dx()*b.Dy()]...)
	}
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	}
	return out
}
