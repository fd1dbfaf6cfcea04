package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"telegram-update-normalizer/internal/domain"
)

// CacheItem — нормализованный пакет, сохраненный по хешу исходных данных.
type CacheItem struct {
	Batch     domain.Batch
	ExpiresAt time.Time
}

// CacheStore хранит результаты нормализации, чтобы повторная загрузка того же
// дампа не разбиралась заново.
type CacheStore struct {
	cache map[string]*CacheItem
	mutex sync.RWMutex
}

// NewCacheStore создает новый экземпляр CacheStore
func NewCacheStore() *CacheStore {
	return &CacheStore{
		cache: make(map[string]*CacheItem),
	}
}

// Get извлекает кэшированный пакет по ключу. Просроченный элемент считается отсутствующим.
func (cs *CacheStore) Get(key string) (*CacheItem, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	item, exists := cs.cache[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		return nil, false
	}

	return item, true
}

// Put сохраняет пакет в кэш с указанным сроком действия
func (cs *CacheStore) Put(key string, batch domain.Batch, ttl time.Duration) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.cache[key] = &CacheItem{
		Batch:     batch,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Len возвращает число элементов, включая еще не удаленные просроченные.
func (cs *CacheStore) Len() int {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()
	return len(cs.cache)
}

// CleanupExpired удаляет просроченные элементы из кэша
func (cs *CacheStore) CleanupExpired() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	now := time.Now()
	for key, item := range cs.cache {
		if now.After(item.ExpiresAt) {
			delete(cs.cache, key)
		}
	}
}

// StartCleanupTicker запускает таймер для периодической очистки просроченных элементов
func (cs *CacheStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

// CalculateHash вычисляет SHA256 от набора полезных нагрузок. Границы между
// частями учитываются, поэтому ["ab","c"] и ["a","bc"] дают разные ключи.
func CalculateHash(parts ...[]byte) string {
	hasher := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(hasher, "%d:", len(p))
		hasher.Write(p)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// CalculateFileHash вычисляет тот же ключ, что CalculateHash от содержимого файлов,
// не загружая их в память целиком.
func CalculateFileHash(filePaths ...string) (string, error) {
	hasher := sha256.New()
	for _, filePath := range filePaths {
		if err := hashFile(hasher, filePath); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func hashFile(w io.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s является директорией", filePath)
	}

	fmt.Fprintf(w, "%d:", info.Size())
	if _, err := io.CopyN(w, file, info.Size()); err != nil {
		return fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	return nil
}
