package onnx

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// InitEnvironment инициализирует среду ONNX Runtime. Вызывается один раз
// при старте процесса, до загрузки модели.
func InitEnvironment(libPath string) error {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	return ort.InitializeEnvironment()
}

// DestroyEnvironment освобождает среду ONNX Runtime.
func DestroyEnvironment() {
	ort.DestroyEnvironment()
}

// Classifier — обёртка над ONNX-моделью классификации изображений.
// Процесс-широкий синглтон: создаётся один раз в main, загружается один раз.
type Classifier struct {
	modelPath  string
	labelsPath string
	logger     *zap.Logger

	loadOnce sync.Once
	loadErr  error
	ready    atomic.Bool

	labels  []string
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]

	// Входной и выходной тензоры сессии переиспользуются между вызовами,
	// поэтому инференс выполняется строго по одному.
	mu sync.Mutex
}

// NewClassifier создаёт незагруженную модель.
func NewClassifier(modelPath, labelsPath string, logger *zap.Logger) *Classifier {
	return &Classifier{
		modelPath:  modelPath,
		labelsPath: labelsPath,
		logger:     logger.Named("onnx"),
	}
}

// Load загружает модель и метки. Повторные вызовы возвращают исход первого.
// После ошибки Ready() навсегда остаётся false.
func (c *Classifier) Load(ctx context.Context) error {
	c.loadOnce.Do(func() {
		c.loadErr = c.load()
	})
	return c.loadErr
}

func (c *Classifier) load() error {
	labels, err := readLabels(c.labelsPath)
	if err != nil {
		return fmt.Errorf("%w: read labels: %v", entity.ErrModelLoad, err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(c.modelPath)
	if err != nil {
		return fmt.Errorf("%w: model info: %v", entity.ErrModelLoad, err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("%w: session options: %v", entity.ErrModelLoad, err)
	}

	input, err := ort.NewTensor(
		ort.NewShape(1, entity.TensorChannels, entity.TensorSize, entity.TensorSize),
		make([]float32, entity.TensorLen),
	)
	if err != nil {
		return fmt.Errorf("%w: input tensor: %v", entity.ErrModelLoad, err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(labels))))
	if err != nil {
		input.Destroy()
		return fmt.Errorf("%w: output tensor: %v", entity.ErrModelLoad, err)
	}

	session, err := ort.NewAdvancedSession(
		c.modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.Value{input},
		[]ort.Value{output},
		opts,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return fmt.Errorf("%w: create session: %v", entity.ErrModelLoad, err)
	}

	c.labels = labels
	c.session = session
	c.input = input
	c.output = output
	c.ready.Store(true)
	c.logger.Info("model session created",
		zap.String("model", c.modelPath),
		zap.Int("labels", len(labels)))
	return nil
}

// Ready сообщает, завершилась ли загрузка модели.
func (c *Classifier) Ready() bool {
	return c.ready.Load()
}

// Classify копирует тензор во входной буфер сессии, запускает инференс
// и превращает логиты в набор меток с вероятностями (softmax).
func (c *Classifier) Classify(ctx context.Context, tensor *entity.Tensor) ([]entity.Prediction, error) {
	if !c.Ready() {
		return nil, entity.ErrModelNotReady
	}
	data := tensor.Data()
	if len(data) != entity.TensorLen {
		return nil, fmt.Errorf("%w: tensor has %d values, want %d", entity.ErrInference, len(data), entity.TensorLen)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.input.GetData(), data)
	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInference, err)
	}

	logits := make([]float32, len(c.output.GetData()))
	copy(logits, c.output.GetData())

	probs := softmax(logits)
	preds := make([]entity.Prediction, 0, len(probs))
	for i, p := range probs {
		if i >= len(c.labels) {
			break
		}
		preds = append(preds, entity.Prediction{Label: c.labels[i], Probability: p})
	}
	return preds, nil
}

// Close освобождает сессию и тензоры.
func (c *Classifier) Close() {
	if c.input != nil {
		c.input.Destroy()
	}
	if c.output != nil {
		c.output.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
}

func softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	exps := make([]float64, len(logits))
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - maxLogit))
		sum += exps[i]
	}
	out := make([]float32, len(logits))
	for i, e := range exps {
		out[i] = float32(e / sum)
	}
	return out
}

// readLabels читает файл меток: одна метка на строку, пустые строки пропускаются.
func readLabels(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			labels = append(labels, line)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}

var _ port.Classifier = (*Classifier)(nil)
