//go:build !gdal
// +build !gdal

package raster

import (
	"context"
	"errors"

	"waterseg-bot/internal/domain/entity"
)

// GDALReader заглушка для сборки без GDAL.
type GDALReader struct{}

// NewReader создаёт читатель-заглушку.
func NewReader() *GDALReader {
	return &GDALReader{}
}

// Read возвращает ошибку, если сборка без тега gdal.
func (r *GDALReader) Read(ctx context.Context, path string) (*entity.RasterStack, error) {
	_ = ctx
	return nil, &entity.RasterReadError{Path: path, Err: errors.New("gdal build tag is not enabled")}
}
