package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/repository/sqlstore"
	"github.com/ignite/social-api/internal/service/account"
	"github.com/ignite/social-api/internal/service/message"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCORS = config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlstore.Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlstore.EnsureSchema(ctx, db, config.DriverSQLite))

	srv := NewServer(config.ServerConfig{}, testCORS, Deps{
		Accounts: account.NewService(sqlstore.NewAccountRepo(db)),
		Messages: message.NewService(sqlstore.NewMessageRepo(db)),
		DB:       db,
	})
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func TestAccountMessageLifecycle(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"pass1"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	alice := decode[domain.Account](t, rr)
	require.NotZero(t, alice.AccountID)
	assert.Equal(t, "alice", alice.Username)

	rr = do(t, h, http.MethodPost, "/login", `{"username":"alice","password":"pass1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, alice, decode[domain.Account](t, rr))

	rr = do(t, h, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	post := `{"posted_by":` + strconv.Itoa(alice.AccountID) + `,"message_text":"hello","time_posted_epoch":1000}`
	rr = do(t, h, http.MethodPost, "/messages", post)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	msg := decode[domain.Message](t, rr)
	require.NotZero(t, msg.MessageID)
	assert.Equal(t, domain.Message{
		MessageID:       msg.MessageID,
		PostedBy:        alice.AccountID,
		MessageText:     "hello",
		TimePostedEpoch: 1000,
	}, msg)

	path := "/messages/" + strconv.Itoa(msg.MessageID)
	rr = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, msg, decode[domain.Message](t, rr))

	rr = do(t, h, http.MethodPatch, path, `{"message_text":"hello edited"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	edited := decode[domain.Message](t, rr)
	assert.Equal(t, "hello edited", edited.MessageText)
	assert.Equal(t, msg.PostedBy, edited.PostedBy)
	assert.Equal(t, msg.TimePostedEpoch, edited.TimePostedEpoch)

	rr = do(t, h, http.MethodGet, "/accounts/"+strconv.Itoa(alice.AccountID)+"/messages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []domain.Message{edited}, decode[[]domain.Message](t, rr))

	rr = do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, edited, decode[domain.Message](t, rr))

	rr = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/messages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestRegister_Rejections(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"pass1"}`).Code)

	for name, body := range map[string]string{
		"duplicate":      `{"username":"alice","password":"other"}`,
		"short password": `{"username":"bob","password":"abc"}`,
		"blank username": `{"username":"  ","password":"pass1"}`,
		"invalid json":   `{"username":`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/register", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rr)["error"])
		})
	}
}

func TestLogin_UnknownUserIsUnauthorized(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/login", `{"username":"ghost","password":"pass1"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateMessage_Rejections(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"pass1"}`)
	alice := decode[domain.Account](t, rr)
	id := strconv.Itoa(alice.AccountID)

	cases := map[string]string{
		"unknown author": `{"posted_by":9999,"message_text":"hi","time_posted_epoch":1}`,
		"blank text":     `{"posted_by":` + id + `,"message_text":"   ","time_posted_epoch":1}`,
		"too long":       `{"posted_by":` + id + `,"message_text":"` + strings.Repeat("x", 255) + `","time_posted_epoch":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/messages", body).Code)
		})
	}

	rr = do(t, h, http.MethodPost, "/messages",
		`{"posted_by":`+id+`,"message_text":"`+strings.Repeat("x", 254)+`","time_posted_epoch":1}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMessageRoutes_BadAndMissingIDs(t *testing.T) {
	h := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/messages/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPatch, "/messages/abc", `{"message_text":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/messages/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/accounts/abc/messages", "").Code)

	rr := do(t, h, http.MethodGet, "/messages/999", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, h, http.MethodPatch, "/messages/999", `{"message_text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/accounts/999/messages", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

// newMockServer wires the API over a sqlmock connection so store failures
// can be injected.
func newMockServer(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := NewServer(config.ServerConfig{}, testCORS, Deps{
		Accounts: account.NewService(sqlstore.NewAccountRepo(db)),
		Messages: message.NewService(sqlstore.NewMessageRepo(db)),
	})
	return srv.Handler(), mock
}

func TestStoreFaults(t *testing.T) {
	t.Run("list messages is a sanitized 500", func(t *testing.T) {
		h, mock := newMockServer(t)
		mock.ExpectQuery(`FROM message ORDER BY message_id`).
			WillReturnError(errors.New(`pq: relation "message" does not exist`))

		rr := do(t, h, http.MethodGet, "/messages", "")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "relation")
		body := decode[map[string]string](t, rr)
		assert.Equal(t, "internal server error", body["error"])
		assert.NotEmpty(t, body["error_id"])
	})

	t.Run("account messages fault is a 400", func(t *testing.T) {
		h, mock := newMockServer(t)
		mock.ExpectQuery(`FROM message WHERE posted_by = \$1`).
			WillReturnError(errors.New("connection reset by peer"))

		rr := do(t, h, http.MethodGet, "/accounts/1/messages", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection reset")
	})

	t.Run("register fault is a 500", func(t *testing.T) {
		h, mock := newMockServer(t)
		mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(errors.New("timeout"))

		rr := do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"pass1"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/messages", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	t.Run("ready with database and redis", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		rr := httptest.NewRecorder()
		NewHealthChecker(db, rdb).HandleReadiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decode[map[string]any](t, rr)
		assert.Equal(t, true, body["ready"])
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("database down is not ready", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rr := httptest.NewRecorder()
		NewHealthChecker(db, nil).HandleReadiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "unhealthy", decode[map[string]any](t, rr)["status"])
	})

	t.Run("liveness", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewHealthChecker(nil, nil).HandleLiveness(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alive", decode[map[string]any](t, rr)["status"])
	})
}

func TestDetermineOverallStatus(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]ComponentCheck
		want   string
	}{
		{"all up", map[string]ComponentCheck{"database": {Status: "up"}, "redis": {Status: "up"}}, "healthy"},
		{"redis not configured", map[string]ComponentCheck{"database": {Status: "up"}, "redis": {Status: "down", Message: notConfigured}}, "healthy"},
		{"redis down", map[string]ComponentCheck{"database": {Status: "up"}, "redis": {Status: "down", Message: "ping failed"}}, "degraded"},
		{"database slow", map[string]ComponentCheck{"database": {Status: "degraded"}}, "degraded"},
		{"database down", map[string]ComponentCheck{"database": {Status: "down"}}, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineOverallStatus(tt.checks))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "42s", formatUptime(42e9))
	assert.Equal(t, "1h 0m 5s", formatUptime(3605e9))
}

func TestWriteRoutes_RejectOversizedBodies(t *testing.T) {
	h := newTestServer(t)
	huge := `{"username":"` + strings.Repeat("a", 64*1024) + `","password":"pass1"}`

	assert.Equal(t, http.StatusRequestEntityTooLarge, do(t, h, http.MethodPost, "/register", huge).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(t, h, http.MethodPost, "/login", huge).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(t, h, http.MethodPatch, "/messages/1", huge).Code)
}
