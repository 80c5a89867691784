//go:build !gocv
// +build !gocv

package vision

import "math"

// BilinearResizer билинейное масштабирование с центрами пикселей в +0.5,
// как INTER_LINEAR в OpenCV.
type BilinearResizer struct{}

// NewResizer создаёт масштабатор каналов.
func NewResizer() *BilinearResizer {
	return &BilinearResizer{}
}

type tap struct {
	i0, i1 int
	frac   float64
}

// Resize масштабирует один канал, исходный срез не меняется.
func (r *BilinearResizer) Resize(src []float32, srcW, srcH, dstW, dstH int) ([]float32, error) {
	if err := checkSizes(len(src), srcW, srcH, dstW, dstH); err != nil {
		return nil, err
	}
	if srcW == dstW && srcH == dstH {
		return append([]float32(nil), src...), nil
	}

	xs := taps(srcW, dstW)
	ys := taps(srcH, dstH)
	out := make([]float32, dstW*dstH)
	for y, ty := range ys {
		row0 := src[ty.i0*srcW : (ty.i0+1)*srcW]
		row1 := src[ty.i1*srcW : (ty.i1+1)*srcW]
		for x, tx := range xs {
			top := float64(row0[tx.i0])*(1-tx.frac) + float64(row0[tx.i1])*tx.frac
			bottom := float64(row1[tx.i0])*(1-tx.frac) + float64(row1[tx.i1])*tx.frac
			out[y*dstW+x] = float32(top*(1-ty.frac) + bottom*ty.frac)
		}
	}
	return out, nil
}

func taps(src, dst int) []tap {
	scale := float64(src) / float64(dst)
	out := make([]tap, dst)
	for d := range out {
		f := (float64(d)+0.5)*scale - 0.5
		i0 := int(math.Floor(f))
		frac := f - float64(i0)
		if i0 < 0 {
			i0, frac = 0, 0
		}
		if i0 >= src-1 {
			i0, frac = src-1, 0
		}
		out[d] = tap{i0: i0, i1: min(i0+1, src-1), frac: frac}
	}
	return out
}
