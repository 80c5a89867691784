package port

// ChannelResizer масштабирует один двумерный канал
type ChannelResizer interface {
	// Resize возвращает новый срез размера dstW*dstH, исходный не изменяется
	Resize(src []float32, srcW, srcH, dstW, dstH int) ([]float32, error)
}
