package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

// tokenEstimator приблизительно считает токены, когда провайдер не вернул usage.
// Токенизатор загружается в фоне один раз на модель (tiktoken скачивает BPE-файл
// без таймаута), поэтому оценка никогда не ждет загрузки: пока токенизатор
// не готов или его не удалось загрузить, возвращается 0.
type tokenEstimator struct {
	load      func(model string) (*tiktoken.Tiktoken, error)
	encodings sync.Map // model -> *encodingEntry
	logger    *zap.Logger
}

type encodingEntry struct {
	once sync.Once
	done chan struct{}
	enc  *tiktoken.Tiktoken
}

func newTokenEstimator(logger *zap.Logger) *tokenEstimator {
	return &tokenEstimator{
		load:   loadEncoding,
		logger: logger.Named("TokenEstimator"),
	}
}

func loadEncoding(model string) (*tiktoken.Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err == nil {
		return enc, nil
	}
	return tiktoken.GetEncoding(fallbackEncoding)
}

// Warm запускает фоновую загрузку токенизатора для модели.
func (e *tokenEstimator) Warm(model string) {
	e.entry(model)
}

// Estimate возвращает оценку числа токенов или 0, если токенизатор еще не готов.
func (e *tokenEstimator) Estimate(model string, texts ...string) int {
	entry := e.entry(model)
	select {
	case <-entry.done:
	default:
		return 0
	}
	if entry.enc == nil {
		return 0
	}

	total := 0
	for _, text := range texts {
		total += len(entry.enc.Encode(text, nil, nil))
	}
	return total
}

// entry возвращает запись кеша для модели. Результат загрузки, в том числе
// неудачный, кешируется: повторных попыток нет.
func (e *tokenEstimator) entry(model string) *encodingEntry {
	v, _ := e.encodings.LoadOrStore(model, &encodingEntry{done: make(chan struct{})})
	entry := v.(*encodingEntry)
	entry.once.Do(func() {
		go func() {
			defer close(entry.done)
			enc, err := e.load(model)
			if err != nil {
				e.logger.Warn("Tokenizer unavailable, token estimation disabled",
					zap.String("model", model), zap.Error(err))
				return
			}
			entry.enc = enc
		}()
	})
	return entry
}
