package inference

import (
	"context"
	"fmt"
	"slices"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

// SessionConfig параметры ONNX сессии.
type SessionConfig struct {
	ModelPath   string
	LibraryPath string // путь к libonnxruntime, если пусто, берётся системный
	InputName   string // если пусто, первый вход модели
	OutputName  string // если пусто, первый выход модели
	InputShape  []int64
	OutputShape []int64
}

// Session модель сегментации на onnxruntime.
// Тензоры выделяются один раз, поэтому Infer сериализован мьютексом.
type Session struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	inputShape   []int64
	outputShape  []int64
}

// NewSession поднимает окружение onnxruntime и загружает модель.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	s, err := newSession(cfg)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, err
	}
	return s, nil
}

func newSession(cfg SessionConfig) (*Session, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model %s has no inputs or outputs", cfg.ModelPath)
	}

	inputName := cfg.InputName
	if inputName == "" {
		inputName = inputs[0].Name
	}
	outputName := cfg.OutputName
	if outputName == "" {
		outputName = outputs[0].Name
	}
	if declared, ok := findDims(outputs, outputName); ok && !compatible(declared, cfg.OutputShape) {
		return nil, &entity.ShapeMismatchError{Expected: cfg.OutputShape, Actual: declared}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(cfg.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(cfg.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{inputName}, []string{outputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Session{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		inputShape:   slices.Clone(cfg.InputShape),
		outputShape:  slices.Clone(cfg.OutputShape),
	}, nil
}

// Infer копирует вход в тензор сессии, запускает модель и возвращает копию выхода.
func (s *Session) Infer(ctx context.Context, input *entity.Tensor) (*entity.Tensor, error) {
	if !slices.Equal(input.Shape, s.inputShape) {
		return nil, &entity.ShapeMismatchError{Expected: s.inputShape, Actual: input.Shape}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	copy(s.inputTensor.GetData(), input.Data)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := slices.Clone(s.outputTensor.GetData())
	return entity.NewTensor(s.outputShape, out)
}

// Close освобождает тензоры, сессию и окружение.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	ort.DestroyEnvironment()
}

func findDims(infos []ort.InputOutputInfo, name string) ([]int64, bool) {
	for _, info := range infos {
		if info.Name == name {
			return info.Dimensions, true
		}
	}
	return nil, false
}

// compatible сравнивает объявленную форму с ожидаемой; динамические оси (<= 0) пропускаются.
func compatible(declared, expected []int64) bool {
	if len(declared) != len(expected) {
		return false
	}
	for i, d := range declared {
		if d > 0 && d != expected[i] {
			return false
		}
	}
	return true
}

var _ port.Segmenter = (*Session)(nil)
