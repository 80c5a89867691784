// Package raster читает многоканальные снимки. Полноценный читатель собирается
// с тегом gdal и требует установленного GDAL.
package raster

import "waterseg-bot/internal/domain/port"

var _ port.RasterReader = (*GDALReader)(nil)
