package entity

import "fmt"

// RasterReadError файл снимка не найден, повреждён или не читается.
type RasterReadError struct {
	Path string
	Err  error
}

func (e *RasterReadError) Error() string {
	return fmt.Sprintf("read raster %q: %v", e.Path, e.Err)
}

func (e *RasterReadError) Unwrap() error {
	return e.Err
}

// BandIndexError в снимке меньше каналов, чем требует выборка.
type BandIndexError struct {
	Path      string
	Required  int
	Available int
}

func (e *BandIndexError) Error() string {
	return fmt.Sprintf("raster %q has %d bands, need at least %d", e.Path, e.Available, e.Required)
}

// ShapeMismatchError выход модели не совпадает по форме с ожидаемым.
type ShapeMismatchError struct {
	Expected []int64
	Actual   []int64
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: expected %v, got %v", e.Expected, e.Actual)
}
