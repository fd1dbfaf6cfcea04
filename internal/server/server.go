package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"telegram-update-normalizer/internal/cache"
	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/pkg/config"
)

const (
	taskTTL         = 24 * time.Hour // TTL для записи о задаче
	defaultPageSize = 50
	maxPageSize     = 500
)

// DumpProcessor нормализует загруженные дампы обновлений.
type DumpProcessor interface {
	NormalizeData(ctx context.Context, data []byte) (domain.Batch, error)
	NormalizeFiles(ctx context.Context, filePaths []string) (domain.Batch, error)
	Cached(hash string) (domain.Batch, bool)
}

// Server представляет HTTP-сервер
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	taskStore  *TaskStore
	cacheStore *cache.CacheStore
	processor  DumpProcessor
	stop       context.CancelFunc
}

// New создает новый экземпляр Server и запускает очистку хранилищ.
func New(cfg *config.Config, processor DumpProcessor, taskStore *TaskStore, cacheStore *cache.CacheStore) (*Server, error) {
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:        cfg,
		taskStore:  taskStore,
		cacheStore: cacheStore,
		processor:  processor,
		stop:       cancel,
	}

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.routes(),
		ReadTimeout:  config.DefaultReadTimeout,
		WriteTimeout: config.DefaultWriteTimeout,
		IdleTimeout:  config.DefaultIdleTimeout,
	}

	interval := cfg.Processing.CleanupInterval
	if interval <= 0 {
		interval = config.DefaultCleanupInterval
	}
	s.taskStore.StartCleanupTicker(ctx, interval)
	s.cacheStore.StartCleanupTicker(ctx, interval)

	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// Промежуточное ПО
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/normalize", s.handleNormalize)
		r.Post("/process", s.handleProcess)
		r.Post("/process-by-hash", s.handleProcessByHash)
		r.Get("/tasks/{taskID}", s.handleTaskStatus)
		r.Get("/tasks/{taskID}/result", s.handleTaskResult)
	})
	return r
}

// handleNormalize синхронно нормализует тело запроса.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUploadSize()))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Тело запроса слишком большое")
			return
		}
		writeError(w, http.StatusBadRequest, "Не удалось прочитать тело запроса")
		return
	}

	batch, err := s.processor.NormalizeData(r.Context(), body)
	if err != nil {
		var decodeErr *domain.DecodeError
		if errors.As(err, &decodeErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NormalizeResult{Batch: batch, Hash: cache.CalculateHash(body)})
}

// NormalizeResult содержит ответ синхронной нормализации. По Hash результат можно
// повторно получить через /process-by-hash, пока он не вытеснен из кеша.
type NormalizeResult struct {
	domain.Batch
	Hash string `json:"hash"`
}

// handleProcess сохраняет загруженные файлы и запускает фоновую задачу.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize())
	if err := r.ParseMultipartForm(s.maxUploadSize()); err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось разобрать форму")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "Не удалось получить файлы из формы")
		return
	}

	taskID := uuid.NewString()
	paths := make([]string, 0, len(headers))
	cleanup := func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}
	for i, h := range headers {
		path, err := saveUpload(h, fmt.Sprintf("updates_%s_%d_*.json", taskID, i))
		if err != nil {
			cleanup()
			slog.Error("failed to store upload", "error", err, "file", h.Filename)
			writeError(w, http.StatusInternalServerError, "Не удалось сохранить загруженный файл")
			return
		}
		paths = append(paths, path)
	}

	hash, err := cache.CalculateFileHash(paths...)
	if err != nil {
		cleanup()
		slog.Error("failed to hash uploads", "error", err, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Не удалось обработать загруженные файлы")
		return
	}

	s.taskStore.CreateTask(taskID, hash, taskTTL)
	go s.runTask(taskID, func(ctx context.Context) (domain.Batch, error) {
		defer cleanup()
		return s.processor.NormalizeFiles(ctx, paths)
	})

	slog.Info("task accepted", "task_id", taskID, "files", len(paths), "hash", hash)
	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID, "hash": hash})
}

// handleProcessByHash создает задачу по хешу ранее загруженных данных.
func (s *Server) handleProcessByHash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось декодировать тело запроса")
		return
	}
	if req.Hash == "" {
		writeError(w, http.StatusBadRequest, "Требуется хеш")
		return
	}

	taskID := uuid.NewString()
	s.taskStore.CreateTask(taskID, req.Hash, taskTTL)
	go s.runTask(taskID, func(context.Context) (domain.Batch, error) {
		if batch, found := s.processor.Cached(req.Hash); found {
			slog.Info("cache hit for hash", "hash", req.Hash, "task_id", taskID)
			return batch, nil
		}
		return domain.Batch{}, fmt.Errorf("данные для хеша %s не найдены в кеше", req.Hash)
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID, "hash": req.Hash})
}

func (s *Server) runTask(taskID string, process func(ctx context.Context) (domain.Batch, error)) {
	s.taskStore.UpdateTaskStatus(taskID, TaskStatusProcessing)

	ctx := context.Background()
	if timeout := s.cfg.Processing.TaskTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	batch, err := process(ctx)
	if err != nil {
		slog.Warn("task failed", "task_id", taskID, "error", err)
		s.taskStore.UpdateTaskError(taskID, err.Error())
		return
	}
	s.taskStore.UpdateTaskResult(taskID, batch)
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskStore.GetTask(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Задача не найдена")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task_id":       task.ID,
		"hash":          task.Hash,
		"status":        task.Status,
		"error_message": task.ErrorMessage,
	})
}

// Pagination содержит метаданные страницы результата.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// TaskResult — страница обновлений задачи. Ошибки событий возвращаются целиком.
type TaskResult struct {
	Pagination Pagination            `json:"pagination"`
	Data       []domain.Update       `json:"data"`
	Failures   []domain.EventFailure `json:"failures,omitempty"`
}

func (s *Server) handleTaskResult(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskStore.GetTask(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Задача не найдена")
		return
	}
	if task.Status != TaskStatusCompleted {
		writeError(w, http.StatusBadRequest, "Задача не завершена")
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Недопустимый параметр page")
		return
	}
	pageSize, err := queryInt(r, "page_size", defaultPageSize)
	if err != nil || pageSize < 1 {
		writeError(w, http.StatusBadRequest, "Недопустимый параметр page_size")
		return
	}
	pageSize = min(pageSize, maxPageSize)

	updates := task.Result.Updates
	total := len(updates)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	writeJSON(w, http.StatusOK, TaskResult{
		Pagination: Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  (total + pageSize - 1) / pageSize,
		},
		Data:     updates[start:end],
		Failures: task.Result.Failures,
	})
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера и останавливает очистку хранилищ
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	s.stop()
	return s.HTTPServer.Shutdown(ctx)
}

func (s *Server) maxUploadSize() int64 {
	if size := s.cfg.MaxUploadSize(); size > 0 {
		return size
	}
	return config.DefaultMaxUploadSizeMB << 20
}

func saveUpload(h *multipart.FileHeader, pattern string) (string, error) {
	in, err := h.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
