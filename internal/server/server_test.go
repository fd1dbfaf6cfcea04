package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"telegram-update-normalizer/internal/cache"
	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/pkg/config"
)

// Mock implementation for DumpProcessor
type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) NormalizeData(ctx context.Context, data []byte) (domain.Batch, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(domain.Batch), args.Error(1)
}

func (m *mockProcessor) NormalizeFiles(ctx context.Context, filePaths []string) (domain.Batch, error) {
	args := m.Called(ctx, filePaths)
	return args.Get(0).(domain.Batch), args.Error(1)
}

func (m *mockProcessor) Cached(hash string) (domain.Batch, bool) {
	args := m.Called(hash)
	return args.Get(0).(domain.Batch), args.Bool(1)
}

func newTestServer(t *testing.T, proc *mockProcessor) *Server {
	t.Helper()
	cfg := &config.Config{
		Server:     config.Server{Host: "localhost", Port: 8080, MaxUploadSizeMB: 1},
		Processing: config.Processing{TaskTimeout: time.Minute, CleanupInterval: time.Hour},
	}
	srv, err := New(cfg, proc, NewTaskStore(), cache.NewCacheStore())
	require.NoError(t, err)
	t.Cleanup(srv.stop)
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.HTTPServer.Handler.ServeHTTP(rr, req)
	return rr
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	for name, content := range files {
		fw, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &b, writer.FormDataContentType()
}

func updates(n int) []domain.Update {
	out := make([]domain.Update, n)
	for i := range out {
		out[i] = domain.Update{ID: int64(i), Kind: domain.UpdateKindUnknown}
	}
	return out
}

func TestServer(t *testing.T) {
	t.Run("Health Check", func(t *testing.T) {
		rr := serve(newTestServer(t, new(mockProcessor)), httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("New без обработчика", func(t *testing.T) {
		_, err := New(&config.Config{}, nil, NewTaskStore(), cache.NewCacheStore())
		assert.Error(t, err)
	})

	t.Run("Синхронная нормализация", func(t *testing.T) {
		proc := new(mockProcessor)
		srv := newTestServer(t, proc)
		body := `{"update_id":1}`
		proc.On("NormalizeData", mock.Anything, []byte(body)).
			Return(domain.Batch{Updates: updates(1), Failures: []domain.EventFailure{{Index: 1, Error: "x"}}}, nil).Once()

		rr := serve(srv, httptest.NewRequest("POST", "/api/v1/normalize", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Updates  []map[string]any      `json:"updates"`
			Failures []domain.EventFailure `json:"failures"`
			Hash     string                `json:"hash"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Updates, 1)
		assert.EqualValues(t, 0, resp.Updates[0]["update_id"])
		assert.Len(t, resp.Failures, 1)
		assert.Equal(t, cache.CalculateHash([]byte(body)), resp.Hash)
		proc.AssertExpectations(t)
	})

	t.Run("Нормализация: битый контейнер", func(t *testing.T) {
		proc := new(mockProcessor)
		srv := newTestServer(t, proc)
		proc.On("NormalizeData", mock.Anything, mock.Anything).
			Return(domain.Batch{}, &domain.DecodeError{Err: errors.New("unexpected token")}).Once()

		rr := serve(srv, httptest.NewRequest("POST", "/api/v1/normalize", strings.NewReader(`"x"`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Нормализация: слишком большое тело", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		big := strings.Repeat("a", 2<<20)

		rr := serve(srv, httptest.NewRequest("POST", "/api/v1/normalize", strings.NewReader(big)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("Process Endpoint", func(t *testing.T) {
		proc := new(mockProcessor)
		srv := newTestServer(t, proc)
		body, contentType := multipartBody(t, "files", map[string]string{"a.json": `[]`, "b.json": `{}`})

		proc.On("NormalizeFiles", mock.Anything, mock.MatchedBy(func(paths []string) bool { return len(paths) == 2 })).
			Return(domain.Batch{Updates: updates(3)}, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/process", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(srv, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		taskID := resp["task_id"]
		require.NotEmpty(t, taskID)
		assert.Len(t, resp["hash"], 64)

		assert.Eventually(t, func() bool {
			task, err := srv.taskStore.GetTask(taskID)
			return err == nil && task.Status == TaskStatusCompleted
		}, time.Second, 10*time.Millisecond)

		rr = serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/"+taskID, nil))
		var status map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
		assert.Equal(t, resp["hash"], status["hash"])
		proc.AssertExpectations(t)
	})

	t.Run("Process Endpoint: ошибка обработки", func(t *testing.T) {
		proc := new(mockProcessor)
		srv := newTestServer(t, proc)
		body, contentType := multipartBody(t, "file", map[string]string{"a.json": `[]`})
		proc.On("NormalizeFiles", mock.Anything, mock.Anything).Return(domain.Batch{}, errors.New("boom")).Once()

		req := httptest.NewRequest("POST", "/api/v1/process", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(srv, req)
		require.Equal(t, http.StatusAccepted, rr.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Eventually(t, func() bool {
			task, err := srv.taskStore.GetTask(resp["task_id"])
			return err == nil && task.Status == TaskStatusFailed && task.ErrorMessage == "boom"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Process Endpoint: нет файлов", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		body, contentType := multipartBody(t, "other", map[string]string{"a.json": `[]`})

		req := httptest.NewRequest("POST", "/api/v1/process", body)
		req.Header.Set("Content-Type", contentType)
		assert.Equal(t, http.StatusBadRequest, serve(srv, req).Code)
	})

	t.Run("Process by hash", func(t *testing.T) {
		proc := new(mockProcessor)
		srv := newTestServer(t, proc)
		proc.On("Cached", "known").Return(domain.Batch{Updates: updates(2)}, true).Once()
		proc.On("Cached", "unknown").Return(domain.Batch{}, false).Once()

		for hash, want := range map[string]TaskStatus{"known": TaskStatusCompleted, "unknown": TaskStatusFailed} {
			rr := serve(srv, httptest.NewRequest("POST", "/api/v1/process-by-hash", strings.NewReader(`{"hash":"`+hash+`"}`)))
			require.Equal(t, http.StatusAccepted, rr.Code)

			var resp map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, hash, resp["hash"])
			assert.Eventually(t, func() bool {
				task, err := srv.taskStore.GetTask(resp["task_id"])
				return err == nil && task.Status == want && task.Hash == hash
			}, time.Second, 10*time.Millisecond, hash)
		}

		rr := serve(srv, httptest.NewRequest("POST", "/api/v1/process-by-hash", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Task Status Endpoint", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		taskID := "test-task-1"
		srv.taskStore.CreateTask(taskID, "", time.Minute)

		rr := serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/"+taskID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, taskID, resp["task_id"])
		assert.Equal(t, string(TaskStatusPending), resp["status"])
	})

	t.Run("Task Not Found", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		assert.Equal(t, http.StatusNotFound, serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/non-existent", nil)).Code)
		assert.Equal(t, http.StatusNotFound, serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/non-existent/result", nil)).Code)
	})

	t.Run("Task Result Endpoint - Not Completed", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		srv.taskStore.CreateTask("test-task-2", "", time.Minute)

		rr := serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/test-task-2/result", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Task Result Endpoint - Success with Pagination", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		taskID := "test-task-3"
		srv.taskStore.CreateTask(taskID, "", time.Minute)
		srv.taskStore.UpdateTaskResult(taskID, domain.Batch{
			Updates:  updates(15),
			Failures: []domain.EventFailure{{Index: 15, UpdateID: 99, Error: "bad"}},
		})

		rr := serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result?page=2&page_size=5", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Pagination Pagination            `json:"pagination"`
			Data       []map[string]any      `json:"data"`
			Failures   []domain.EventFailure `json:"failures"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

		assert.Equal(t, Pagination{CurrentPage: 2, PageSize: 5, TotalItems: 15, TotalPages: 3}, resp.Pagination)
		require.Len(t, resp.Data, 5)
		assert.EqualValues(t, 5, resp.Data[0]["update_id"])
		assert.EqualValues(t, 9, resp.Data[4]["update_id"])
		assert.Len(t, resp.Failures, 1)
	})

	t.Run("Task Result Endpoint - page beyond range and bad params", func(t *testing.T) {
		srv := newTestServer(t, new(mockProcessor))
		taskID := "test-task-4"
		srv.taskStore.CreateTask(taskID, "", time.Minute)
		srv.taskStore.UpdateTaskResult(taskID, domain.Batch{Updates: updates(3)})

		rr := serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result?page=10", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Pagination Pagination `json:"pagination"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, Pagination{CurrentPage: 10, PageSize: defaultPageSize, TotalItems: 3, TotalPages: 1}, resp.Pagination)

		for _, query := range []string{"page=0", "page=abc", "page_size=-1"} {
			rr := serve(srv, httptest.NewRequest("GET", "/api/v1/tasks/"+taskID+"/result?"+query, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, query)
		}
	})
}
