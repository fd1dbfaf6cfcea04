package botapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-update-normalizer/internal/requests"
)

const testToken = "123456:TEST"

// fakeAPI отвечает как Bot API и запоминает параметры последнего запроса.
type fakeAPI struct {
	mu       sync.Mutex
	lastForm map[string]string
	handlers map[string]string
	block    chan struct{}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	_ = r.ParseForm()

	f.mu.Lock()
	f.lastForm = map[string]string{}
	for k := range r.PostForm {
		f.lastForm[k] = r.PostForm.Get(k)
	}
	f.mu.Unlock()

	if method == "getUpdates" && f.block != nil {
		<-f.block
	}

	body, ok := f.handlers[method]
	if !ok {
		body = `{"ok":false,"error_code":404,"description":"Not Found: method not found"}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) form() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func newFake(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	fake := &fakeAPI{handlers: map[string]string{
		"getMe":           `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Normalizer","username":"normalizer_bot"}}`,
		"getUpdates":      `{"ok":true,"result":[{"update_id":7,"message":{"message_id":1,"date":1700000000,"chat":{"id":5,"type":"private"},"text":"hi"}}]}`,
		"editMessageText": `{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":5,"type":"private"},"text":"new"}}`,
		"deleteMessage":   `{"ok":false,"error_code":400,"description":"Bad Request: message can't be deleted"}`,
	}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(testToken, WithEndpoint(srv.URL+"/bot%s/%s"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return fake, client
}

func TestNewClient(t *testing.T) {
	t.Run("подключение выполняет getMe", func(t *testing.T) {
		_, client := newFake(t)
		assert.Equal(t, "normalizer_bot", client.Self())
	})

	t.Run("ошибка авторизации", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
		}))
		defer srv.Close()

		_, err := NewClient(testToken, WithEndpoint(srv.URL+"/bot%s/%s"))
		assert.ErrorContains(t, err, "Unauthorized")
	})
}

func TestGetUpdates(t *testing.T) {
	fake, client := newFake(t)

	raw, err := client.GetUpdates(context.Background(), 7, 30, []string{"message", "callback_query"})
	require.NoError(t, err)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(raw, &events))
	require.Len(t, events, 1)
	assert.EqualValues(t, 7, events[0]["update_id"])

	form := fake.form()
	assert.Equal(t, "7", form["offset"])
	assert.Equal(t, "30", form["timeout"])
	assert.JSONEq(t, `["message","callback_query"]`, form["allowed_updates"])
}

func TestGetUpdates_ContextCancel(t *testing.T) {
	fake, client := newFake(t)
	fake.block = make(chan struct{})
	defer close(fake.block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetUpdates(ctx, 0, 0, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecute(t *testing.T) {
	t.Run("параметры запроса", func(t *testing.T) {
		fake, client := newFake(t)
		req := requests.NewEditMessageText(5, 1, "new")
		req.ParseMode = requests.ParseModeHTML

		result, err := client.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, string(result), `"text":"new"`)

		form := fake.form()
		assert.Equal(t, "5", form["chat_id"])
		assert.Equal(t, "1", form["message_id"])
		assert.Equal(t, "new", form["text"])
		assert.Equal(t, "HTML", form["parse_mode"])
		assert.NotContains(t, form, "inline_message_id")
	})

	t.Run("ошибка API", func(t *testing.T) {
		_, client := newFake(t)

		_, err := client.Execute(context.Background(), requests.NewDeleteMessage(5, 1))
		assert.ErrorContains(t, err, "deleteMessage")
		assert.ErrorContains(t, err, "can't be deleted")
	})

	t.Run("некорректный запрос не отправляется", func(t *testing.T) {
		fake, client := newFake(t)
		before := fake.form()

		_, err := client.Execute(context.Background(), requests.NewEditMessageText(5, 1, ""))
		assert.Error(t, err)
		assert.Equal(t, before, fake.form())
	})
}

func TestToParams(t *testing.T) {
	params, err := toParams([]byte(`{"chat_id":5,"text":"a \"b\"","reply_markup":{"inline_keyboard":[]},"disable_web_page_preview":true}`))
	require.NoError(t, err)

	assert.Equal(t, "5", params["chat_id"])
	assert.Equal(t, `a "b"`, params["text"])
	assert.Equal(t, `{"inline_keyboard":[]}`, params["reply_markup"])
	assert.Equal(t, "true", params["disable_web_page_preview"])
}

func TestHealth(t *testing.T) {
	fake, client := newFake(t)

	t.Run("идентификатор без токена", func(t *testing.T) {
		assert.NotEmpty(t, client.ID())
		assert.NotContains(t, client.ID(), testToken)
	})

	t.Run("getMe доступен", func(t *testing.T) {
		assert.NoError(t, client.Health(context.Background()))
	})

	t.Run("getMe недоступен", func(t *testing.T) {
		fake.handlers["getMe"] = `{"ok":false,"error_code":502,"description":"Bad Gateway"}`
		assert.Error(t, client.Health(context.Background()))
	})
}

func TestEndpointHost(t *testing.T) {
	assert.Equal(t, "api.telegram.org", endpointHost("https://api.telegram.org/bot%s/%s"))
	assert.Equal(t, "127.0.0.1:8081", endpointHost("http://127.0.0.1:8081/bot%s/%s"))
	assert.Equal(t, "not a url", endpointHost("not a url"))
}
