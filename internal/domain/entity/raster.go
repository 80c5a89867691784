package entity

import "fmt"

// RasterStack набор спектральных каналов снимка в порядке файла.
// Каналы нумеруются с 1, как в GDAL.
type RasterStack struct {
	Width  int         // ширина в пикселях
	Height int         // высота в пикселях
	Bands  [][]float32 // построчные данные каждого канала
}

// BandCount возвращает количество каналов.
func (r *RasterStack) BandCount() int {
	return len(r.Bands)
}

// Band возвращает канал по номеру (с 1). Второе значение false, если канала нет.
func (r *RasterStack) Band(n int) ([]float32, bool) {
	if n < 1 || n > len(r.Bands) {
		return nil, false
	}
	return r.Bands[n-1], true
}

// Validate проверяет, что все каналы одного размера.
func (r *RasterStack) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", r.Width, r.Height)
	}
	want := r.Width * r.Height
	for i, band := range r.Bands {
		if len(band) != want {
			return fmt.Errorf("band %d has %d samples, want %d", i+1, len(band), want)
		}
	}
	return nil
}
