package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"telegram-update-normalizer/internal/adapters/source"
	"telegram-update-normalizer/internal/cache"
	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/ports"
)

// NormalizeDumpUseCase разбирает дампы обновлений и нормализует их.
// Результат кешируется по хешу содержимого.
type NormalizeDumpUseCase struct {
	parser     ports.Parser
	normalizer ports.Normalizer
	cacheStore *cache.CacheStore
	cacheTTL   time.Duration
	log        *slog.Logger
}

// NewNormalizeDumpUseCase создает новый экземпляр NormalizeDumpUseCase.
func NewNormalizeDumpUseCase(
	parser ports.Parser,
	normalizer ports.Normalizer,
	cacheStore *cache.CacheStore,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *NormalizeDumpUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &NormalizeDumpUseCase{
		parser:     parser,
		normalizer: normalizer,
		cacheStore: cacheStore,
		cacheTTL:   cacheTTL,
		log:        logger.With("component", "normalize_dump"),
	}
}

// NormalizeData нормализует одно тело: событие, массив событий или ответ getUpdates.
func (uc *NormalizeDumpUseCase) NormalizeData(ctx context.Context, data []byte) (domain.Batch, error) {
	return uc.normalize(ctx, cache.CalculateHash(data), [][]byte{data})
}

// NormalizeFiles нормализует набор файлов как один пакет.
func (uc *NormalizeDumpUseCase) NormalizeFiles(ctx context.Context, filePaths []string) (domain.Batch, error) {
	payloads := make([][]byte, 0, len(filePaths))
	for _, filePath := range filePaths {
		data, err := source.NewCliSource(filePath).Fetch()
		if err != nil {
			return domain.Batch{}, fmt.Errorf("не удалось извлечь данные из %s: %w", filePath, err)
		}
		payloads = append(payloads, data)
	}
	return uc.normalize(ctx, cache.CalculateHash(payloads...), payloads)
}

// Cached возвращает ранее вычисленный пакет по хешу.
func (uc *NormalizeDumpUseCase) Cached(hash string) (domain.Batch, bool) {
	item, found := uc.cacheStore.Get(hash)
	if !found {
		return domain.Batch{}, false
	}
	return item.Batch, true
}

func (uc *NormalizeDumpUseCase) normalize(ctx context.Context, hash string, payloads [][]byte) (domain.Batch, error) {
	if batch, found := uc.Cached(hash); found {
		uc.log.Info("cache hit", "hash", hash)
		return batch, nil
	}

	var (
		events    []domain.RawEvent
		positions []int // сквозной номер каждого события во входных данных
		failures  []domain.EventFailure
		offset    int
	)
	for i, data := range payloads {
		if err := ctx.Err(); err != nil {
			return domain.Batch{}, fmt.Errorf("обработка прервана: %w", err)
		}
		parsed, parseFailures, err := uc.parser.ParseUpdates(data)
		if err != nil {
			return domain.Batch{}, fmt.Errorf("не удалось разобрать дамп %d: %w", i+1, err)
		}
		failed := make(map[int]bool, len(parseFailures))
		for _, f := range parseFailures {
			failed[f.Index] = true
			f.Index += offset
			failures = append(failures, f)
		}
		total := len(parsed) + len(parseFailures)
		for j := 0; j < total; j++ {
			if !failed[j] {
				positions = append(positions, offset+j)
			}
		}
		offset += total
		events = append(events, parsed...)
	}

	batch := uc.normalizer.NormalizeBatch(events)
	for k := range batch.Failures {
		if idx := batch.Failures[k].Index; idx < len(positions) {
			batch.Failures[k].Index = positions[idx]
		}
	}
	batch.Failures = append(failures, batch.Failures...)
	sort.SliceStable(batch.Failures, func(a, b int) bool {
		return batch.Failures[a].Index < batch.Failures[b].Index
	})

	uc.cacheStore.Put(hash, batch, uc.cacheTTL)
	uc.log.Info("dump normalized",
		"hash", hash,
		"updates", len(batch.Updates),
		"failures", len(batch.Failures),
	)
	return batch, nil
}
