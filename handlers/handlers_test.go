package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"palette/db"
	"palette/dto"
	"palette/models"
	"palette/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t       *testing.T
	engine  *gin.Engine
	db      *gorm.DB
	storage *storage.DiskStorage
	cache   *memoryCache
}

// memoryCache keeps values in a map, encoded like the Redis cache does
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, err := db.Open(fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, models.Migrate(conn))
	disk := storage.NewDiskStorage(&storage.Bucket{Path: t.TempDir()}).(*storage.DiskStorage)

	memory := &memoryCache{values: map[string][]byte{}}

	engine := gin.New()
	Register(engine, Config{
		DB:          conn,
		Storage:     disk,
		Cache:       memory,
		PageSize:    10,
		TokenSecret: "handlers-test",
		TokenExpiry: time.Hour,
	})
	return &testServer{t: t, engine: engine, db: conn, storage: disk, cache: memory}
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	return s.do(method, path, token, reader, "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), w.Body.String())
	return result
}

// signUp registers a member and returns its bearer token
func (s *testServer) signUp(name string) string {
	email := name + "@palette.test"
	w := s.doJSON(http.MethodPost, "/member/signup", "", dto.SignUpRequest{Email: email, Password: "1234", Name: name})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	w = s.doJSON(http.MethodPost, "/member/login", "", dto.LoginRequest{Email: email, Password: "1234"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	login := decode[dto.LoginResponse](s.t, w)
	require.NotEmpty(s.t, login.Token)
	return login.Token
}

func (s *testServer) createGroup(token, name string) dto.GroupResponse {
	w := s.doJSON(http.MethodPost, "/group", token, dto.GroupCreateRequest{GroupName: name, GroupIntroduction: name + " 소개"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.GroupResponse](s.t, w)
}

func (s *testServer) createPostGroup(token string, groupID uint64) dto.PostGroupResponse {
	w := s.doJSON(http.MethodPost, fmt.Sprintf("/group/%d/postgroup", groupID), token, dto.PostGroupRequest{
		Title: "제주 여행", Region: "jeju", PeriodStart: "2022-07-10", PeriodEnd: "2022-07-12",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.PostGroupResponse](s.t, w)
}

func pngBytes(t *testing.T) []byte {
	buf := bytes.Buffer{}
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	return buf.Bytes()
}

func postForm(t *testing.T, data any, files map[string][]byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("data", string(encoded)))
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func (s *testServer) createPost(token string, postGroupID uint64, title string, files map[string][]byte) *httptest.ResponseRecorder {
	body, contentType := postForm(s.t, dto.PostRequestDto{Title: title, Content: title + " 내용"}, files)
	return s.do(http.MethodPost, fmt.Sprintf("/postgroup/%d/post", postGroupID), token, body, contentType)
}
