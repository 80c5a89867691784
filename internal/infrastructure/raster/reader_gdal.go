//go:build gdal
// +build gdal

package raster

import (
	"context"
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"

	"waterseg-bot/internal/domain/entity"
)

var registerOnce sync.Once

// GDALReader читает многоканальные снимки (GeoTIFF и всё, что умеет GDAL).
type GDALReader struct{}

// NewReader создаёт читатель снимков на GDAL.
func NewReader() *GDALReader {
	registerOnce.Do(godal.RegisterAll)
	return &GDALReader{}
}

// Read читает все каналы в float32. Датасет закрывается на любом пути выхода.
func (r *GDALReader) Read(ctx context.Context, path string) (stack *entity.RasterStack, err error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, &entity.RasterReadError{Path: path, Err: err}
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil && err == nil {
			stack, err = nil, &entity.RasterReadError{Path: path, Err: cerr}
		}
	}()

	st := ds.Structure()
	stack = &entity.RasterStack{
		Width:  st.SizeX,
		Height: st.SizeY,
		Bands:  make([][]float32, 0, st.NBands),
	}
	for i, band := range ds.Bands() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buf := make([]float32, st.SizeX*st.SizeY)
		if err := band.Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
			return nil, &entity.RasterReadError{Path: path, Err: fmt.Errorf("band %d: %w", i+1, err)}
		}
		stack.Bands = append(stack.Bands, buf)
	}
	return stack, nil
}
