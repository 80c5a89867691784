//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// BilinearResizer масштабирует каналы через cv::resize с INTER_LINEAR.
type BilinearResizer struct{}

// NewResizer создаёт масштабатор каналов.
func NewResizer() *BilinearResizer {
	return &BilinearResizer{}
}

// Resize масштабирует один канал, исходный срез не меняется.
func (r *BilinearResizer) Resize(src []float32, srcW, srcH, dstW, dstH int) ([]float32, error) {
	if err := checkSizes(len(src), srcW, srcH, dstW, dstH); err != nil {
		return nil, err
	}

	mat := gocv.NewMatWithSize(srcH, srcW, gocv.MatTypeCV32F)
	defer mat.Close()
	buf, err := mat.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("access mat data: %w", err)
	}
	copy(buf, src)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(dstW, dstH), 0, 0, gocv.InterpolationLinear)
	if resized.Empty() {
		return nil, errors.New("resize produced empty mat")
	}

	out, err := resized.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("access resized data: %w", err)
	}
	return append([]float32(nil), out...), nil
}
