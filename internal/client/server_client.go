// Package client реализует HTTP-клиент API сервера нормализации.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"telegram-update-normalizer/internal/domain"
)

// ServerClient — клиент для взаимодействия с API сервера нормализации.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewServerClient создает новый экземпляр ServerClient.
func NewServerClient(baseURL string, timeout time.Duration) *ServerClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ServerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// API-ответы
type StartTaskResponse struct {
	TaskID string `json:"task_id"`
	Hash   string `json:"hash"`
}

type TaskStatusResponse struct {
	TaskID       string `json:"task_id"`
	Hash         string `json:"hash,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// PaginationDTO представляет собой объект пагинации из ответа сервера.
type PaginationDTO struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// TaskResultResponse содержит страницу результата. Обновления остаются в JSON сервера.
type TaskResultResponse struct {
	Pagination PaginationDTO         `json:"pagination"`
	Data       []json.RawMessage     `json:"data"`
	Failures   []domain.EventFailure `json:"failures,omitempty"`
}

// NormalizeResponse содержит ответ синхронной нормализации.
type NormalizeResponse struct {
	Updates  []json.RawMessage     `json:"updates"`
	Failures []domain.EventFailure `json:"failures,omitempty"`
	Hash     string                `json:"hash"`
}

// DocumentFile представляет файл для загрузки.
type DocumentFile struct {
	Name    string
	Content io.Reader
}

// Normalize отправляет тело на синхронную нормализацию.
func (c *ServerClient) Normalize(ctx context.Context, body io.Reader) (*NormalizeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/normalize", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result NormalizeResponse
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StartTask отправляет один или несколько файлов на сервер для начала обработки.
func (c *ServerClient) StartTask(ctx context.Context, files []DocumentFile) (*StartTaskResponse, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, file := range files {
		fw, err := w.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file for %s: %w", file.Name, err)
		}
		if _, err = io.Copy(fw, file.Content); err != nil {
			return nil, fmt.Errorf("failed to copy file content for %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/process", &b)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result StartTaskResponse
	if err := c.do(req, http.StatusAccepted, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProcessByHash создает задачу по хешу, полученному от Normalize или StartTask.
// Если результат уже вытеснен из кеша, задача завершится со статусом failed.
func (c *ServerClient) ProcessByHash(ctx context.Context, hash string) (*StartTaskResponse, error) {
	body, err := json.Marshal(map[string]string{"hash": hash})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/process-by-hash", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result StartTaskResponse
	if err := c.do(req, http.StatusAccepted, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTaskStatus запрашивает статус задачи.
func (c *ServerClient) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/tasks/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result TaskStatusResponse
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTaskResult запрашивает страницу результата выполненной задачи.
func (c *ServerClient) GetTaskResult(ctx context.Context, taskID string, page, pageSize int) (*TaskResultResponse, error) {
	url := fmt.Sprintf("%s/api/v1/tasks/%s/result?page=%d&page_size=%d", c.baseURL, taskID, page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result TaskResultResponse
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WaitForTask опрашивает статус, пока задача не завершится.
func (c *ServerClient) WaitForTask(ctx context.Context, taskID string, interval time.Duration) (*TaskStatusResponse, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := c.GetTaskStatus(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch status.Status {
		case "completed":
			return status, nil
		case "failed":
			return status, fmt.Errorf("task %s failed: %s", taskID, status.ErrorMessage)
		case "pending", "processing":
		default:
			return status, fmt.Errorf("unknown task status: %s", status.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *ServerClient) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
