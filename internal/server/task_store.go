package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"telegram-update-normalizer/internal/domain"
)

// ErrTaskNotFound возвращается для неизвестного или удаленного идентификатора задачи.
var ErrTaskNotFound = errors.New("task not found")

// TaskStatus представляет статус задачи обработки
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task представляет собой одну задачу нормализации загруженных дампов
type Task struct {
	ID           string
	Hash         string // ключ исходных данных в кеше
	Status       TaskStatus
	Result       domain.Batch
	ErrorMessage string
	CreatedAt    time.Time
	ExpiresAt    time.Time // Для автоматической очистки
}

// TaskStore управляет хранением и извлечением задач
type TaskStore struct {
	tasks map[string]*Task
	mutex sync.RWMutex
}

// NewTaskStore создает новый экземпляр TaskStore
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
	}
}

// CreateTask создает новую задачу со статусом 'pending'
func (ts *TaskStore) CreateTask(taskID, hash string, ttl time.Duration) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	now := time.Now()
	ts.tasks[taskID] = &Task{
		ID:        taskID,
		Hash:      hash,
		Status:    TaskStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (ts *TaskStore) update(taskID string, fn func(*Task)) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	task, exists := ts.tasks[taskID]
	if !exists {
		return fmt.Errorf("задача %s: %w", taskID, ErrTaskNotFound)
	}
	fn(task)
	return nil
}

// UpdateTaskStatus обновляет статус задачи
func (ts *TaskStore) UpdateTaskStatus(taskID string, status TaskStatus) error {
	return ts.update(taskID, func(t *Task) { t.Status = status })
}

// UpdateTaskResult сохраняет нормализованный пакет и переводит задачу в 'completed'
func (ts *TaskStore) UpdateTaskResult(taskID string, result domain.Batch) error {
	return ts.update(taskID, func(t *Task) {
		t.Status = TaskStatusCompleted
		t.Result = result
	})
}

// UpdateTaskError обновляет сообщение об ошибке и статус задачи на 'failed'
func (ts *TaskStore) UpdateTaskError(taskID string, errorMessage string) error {
	return ts.update(taskID, func(t *Task) {
		t.Status = TaskStatusFailed
		t.ErrorMessage = errorMessage
	})
}

// GetTask возвращает копию задачи по ее ID
func (ts *TaskStore) GetTask(taskID string) (Task, error) {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	task, exists := ts.tasks[taskID]
	if !exists {
		return Task{}, fmt.Errorf("задача %s: %w", taskID, ErrTaskNotFound)
	}
	return *task, nil
}

// CleanupExpired удаляет просроченные задачи из хранилища
func (ts *TaskStore) CleanupExpired() {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	now := time.Now()
	for taskID, task := range ts.tasks {
		if now.After(task.ExpiresAt) {
			delete(ts.tasks, taskID)
		}
	}
}

// StartCleanupTicker запускает тикер для периодической очистки просроченных задач
func (ts *TaskStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ts.CleanupExpired()
			}
		}
	}()
}
