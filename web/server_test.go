package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/ai/mock"
	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/search"
	"github.com/caselens/caselens/storage/badger"
)

const testQuery = "appeal against conviction for murder under section 302"

func newTestServer(t *testing.T, provider ai.Provider, opts ...Option) *Server {
	caseRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		caseRepo.Close()
		backend.Close()
	})

	ctx := context.Background()
	_, err = caseRepo.AddCases(ctx,
		&core.Case{Name: "State v. Rao", Text: "conviction under the penal code", Vector: []float32{0.9, 0.1, 0.0}},
		&core.Case{Name: "Mehta v. Union", Text: "tax assessment dispute", Vector: []float32{0.1, 0.1, 0.8}},
	)
	require.NoError(t, err)

	searcher, err := search.NewSearcher(caseRepo, provider)
	require.NoError(t, err)

	server, err := NewServer(searcher, provider, opts...)
	require.NoError(t, err)
	return server
}

func testProvider() ai.Provider {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1.0, 0.0, 0.0}, nil
	}
	return mock.NewMockProviderWithServices(embedder, mock.NewMockClassifier(), mock.NewMockExplainer())
}

func postForm(t *testing.T, server *Server, path string, fields map[string]string) *httptest.ResponseRecorder {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServer(t *testing.T) {
	provider := testProvider()

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewServer(nil, provider)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		caseRepo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() {
			caseRepo.Close()
			backend.Close()
		}()

		searcher, err := search.NewSearcher(caseRepo, provider)
		require.NoError(t, err)

		_, err = NewServer(searcher, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestSearch_Text(t *testing.T) {
	server := newTestServer(t, testProvider())

	w := postForm(t, server, "/api/search", map[string]string{"text": testQuery})

	require.Equal(t, http.StatusOK, w.Code)

	var body searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Results, 2)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "criminal", body.Category)

	assert.Equal(t, "State v. Rao", body.Results[0].Case)
	assert.Equal(t, 1, body.Results[0].Rank)
	assert.Equal(t, 2, body.Results[1].Rank)
	assert.Greater(t, body.Results[0].Score, body.Results[1].Score)
	assert.Equal(t, "conviction under the penal code", body.Results[0].FullText)
	assert.NotEmpty(t, body.Results[0].Preview)
}

func TestSearch_Validation(t *testing.T) {
	server := newTestServer(t, testProvider())

	t.Run("neither text nor file", func(t *testing.T) {
		w := postForm(t, server, "/api/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short query", func(t *testing.T) {
		w := postForm(t, server, "/api/search", map[string]string{"text": "too short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearch_Upload(t *testing.T) {
	server := newTestServer(t, testProvider(), WithMaxUploadBytes(64))

	upload := func(filename string, content []byte, extraText string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if extraText != "" {
			require.NoError(t, mw.WriteField("text", extraText))
		}
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/search", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		return w
	}

	t.Run("rejects non-pdf extension", func(t *testing.T) {
		w := upload("notes.txt", []byte("plain text"), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		w := upload("big.pdf", bytes.Repeat([]byte("x"), 200), "")
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("rejects malformed pdf", func(t *testing.T) {
		w := upload("fake.pdf", []byte("not a real pdf"), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects text and file together", func(t *testing.T) {
		w := upload("case.pdf", []byte("%PDF-1.4"), "some query text here please")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChat(t *testing.T) {
	server := newTestServer(t, testProvider())

	t.Run("greeting gets canned reply", func(t *testing.T) {
		w := postJSON(t, server, "/api/chat", gin.H{"question": "Hello"})
		require.Equal(t, http.StatusOK, w.Code)

		var body chatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, greetingReply, body.Answer)
		assert.Empty(t, body.Sources)
	})

	t.Run("no context gets canned reply", func(t *testing.T) {
		w := postJSON(t, server, "/api/chat", gin.H{"question": "What did the court hold?"})
		require.Equal(t, http.StatusOK, w.Code)

		var body chatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, noContextReply, body.Answer)
	})

	t.Run("grounded answer with sources", func(t *testing.T) {
		w := postJSON(t, server, "/api/chat", gin.H{
			"question": "What did the court hold?",
			"context": []gin.H{
				{"case": "State v. Rao", "text": "the conviction was upheld"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body chatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Answer)
		assert.Equal(t, []string{"State v. Rao"}, body.Sources)
	})

	t.Run("empty question", func(t *testing.T) {
		w := postJSON(t, server, "/api/chat", gin.H{"question": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChat_ErrorTaxonomy(t *testing.T) {
	newServerWithExplainErr := func(t *testing.T, err error) *Server {
		explainer := mock.NewMockExplainer()
		explainer.ExplainFunc = func(ctx context.Context, question string, chunks []ai.ContextChunk) (*ai.Explanation, error) {
			return nil, err
		}
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), mock.NewMockClassifier(), explainer)
		return newTestServer(t, provider)
	}

	body := gin.H{
		"question": "What did the court hold?",
		"context":  []gin.H{{"case": "A", "text": "b"}},
	}

	t.Run("quota exhausted", func(t *testing.T) {
		w := postJSON(t, newServerWithExplainErr(t, ai.ErrQuotaExceeded), "/api/chat", body)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := postJSON(t, newServerWithExplainErr(t, ai.ErrInvalidCredentials), "/api/chat", body)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("generic failure", func(t *testing.T) {
		w := postJSON(t, newServerWithExplainErr(t, assert.AnError), "/api/chat", body)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, testProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTestAI(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := newTestServer(t, testProvider())

		req := httptest.NewRequest(http.MethodGet, "/api/test-ai", nil)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("quota error surfaces", func(t *testing.T) {
		explainer := mock.NewMockExplainer()
		explainer.PingFunc = func(ctx context.Context) error { return ai.ErrQuotaExceeded }
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), mock.NewMockClassifier(), explainer)
		server := newTestServer(t, provider)

		req := httptest.NewRequest(http.MethodGet, "/api/test-ai", nil)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestTheme(t *testing.T) {
	server := newTestServer(t, testProvider())

	t.Run("defaults to light", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())
	})

	t.Run("unrecognized cookie reads as light", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
		req.AddCookie(&http.Cookie{Name: themeCookie, Value: "solarized"})
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())
	})

	t.Run("set and read back", func(t *testing.T) {
		data, err := json.Marshal(gin.H{"theme": "dark"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/theme", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		read := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
		for _, ck := range cookies {
			read.AddCookie(ck)
		}
		w2 := httptest.NewRecorder()
		server.Handler().ServeHTTP(w2, read)
		assert.JSONEq(t, `{"theme":"dark"}`, w2.Body.String())
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		data, err := json.Marshal(gin.H{"theme": "sepia"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/theme", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

