package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardroom/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	ts    *httptest.Server
	store *database.Store
	redis *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	config := database.DefaultConfig()
	config.DBDriver = database.DriverSQLite
	config.DatabaseURL = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	config.DBMaxOpenConns = 1
	config.DBMaxIdleConns = 1

	db, err := database.Open(config, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger))
	store := database.NewStore(db)
	t.Cleanup(func() { store.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	ready := database.NewReadyStore(rdb, 30*time.Minute)

	ts := httptest.NewServer(NewRouter(store, ready, logger, config))
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: store, redis: mr}
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func expectStatus(t *testing.T, resp *http.Response, status int) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, resp)
	require.Equal(t, status, resp.StatusCode, "body: %v", body)
	return body
}
