package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwise/backoffice-client/internal/httpclient"
)

func newStore(t *testing.T, fileContent string) (*Store, string, *httpclient.Client) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.json")
	if fileContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(fileContent), 0o600))
	}

	client := httpclient.New("http://localhost:0", time.Second, nil)
	return NewStore(path, client), path, client
}

func TestRehydrate_ValidRecord(t *testing.T) {
	store, _, client := newStore(t, `{"token": "abc", "roleId": 2, "login": "econ1"}`)

	require.True(t, store.IsAuthenticated())
	sess := store.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "econ1", sess.Login)
	assert.Equal(t, 2, sess.RoleID)
	assert.Equal(t, "abc", client.Token())
}

func TestRehydrate_IncompleteRecordsYieldNoSession(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing_file", ""},
		{"missing_token", `{"roleId": 2, "login": "econ1"}`},
		{"missing_login", `{"token": "abc", "roleId": 2}`},
		{"missing_role", `{"token": "abc", "login": "econ1"}`},
		{"non_numeric_role", `{"token": "abc", "roleId": "manager", "login": "econ1"}`},
		{"negative_role", `{"token": "abc", "roleId": -1, "login": "econ1"}`},
		{"broken_json", `{"token": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _, client := newStore(t, tc.raw)
			assert.False(t, store.IsAuthenticated())
			assert.Nil(t, store.Current())
			assert.Empty(t, client.Token())
		})
	}
}

func TestRehydrate_ExpiredJWTDropped(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	record, err := json.Marshal(Session{Token: token, RoleID: 2, Login: "econ1"})
	require.NoError(t, err)

	store, _, _ := newStore(t, string(record))
	assert.False(t, store.IsAuthenticated())
}

func TestRehydrate_OpaqueTokenKept(t *testing.T) {
	// Не-JWT токен не браковать: срок его жизни знает только сервер.
	store, _, _ := newStore(t, `{"token": "opaque-token", "roleId": 3, "login": "supplier"}`)
	assert.True(t, store.IsAuthenticated())
}

func TestLogin_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token": "t1", "role_id": 1, "available_action": {"href": "/api/v1/users", "method": "GET"}}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	client := httpclient.New(server.URL, time.Second, nil)
	store := NewStore(path, client)

	sess, err := store.Login(context.Background(), "admin", "pass123")
	require.NoError(t, err)

	// Логин в ответе отсутствовал — берём введённый.
	assert.Equal(t, "admin", sess.Login)
	assert.Equal(t, 1, sess.RoleID)
	assert.Equal(t, "t1", client.Token())
	require.NotNil(t, sess.AvailableAction)
	assert.Equal(t, "/api/v1/users", sess.AvailableAction.Href)

	// Файл сессии на месте и восстанавливается новым хранилищем.
	restored := NewStore(path, httpclient.New(server.URL, time.Second, nil))
	require.True(t, restored.IsAuthenticated())
	assert.Equal(t, "admin", restored.Current().Login)
}

func TestLogout_ClearsEverything(t *testing.T) {
	store, path, client := newStore(t, `{"token": "abc", "roleId": 2, "login": "econ1"}`)

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, client.Token())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Повторный выход безопасен.
	store.Logout()
}

func TestHandleUnauthorized_ForcesLogout(t *testing.T) {
	store, _, _ := newStore(t, `{"token": "abc", "roleId": 2, "login": "econ1"}`)

	store.HandleUnauthorized()
	assert.False(t, store.IsAuthenticated())
}

func TestHomeRoute_ByRole(t *testing.T) {
	admin, _, _ := newStore(t, `{"token": "abc", "roleId": 1, "login": "admin"}`)
	assert.Equal(t, "/admin", admin.HomeRoute())

	economist, _, _ := newStore(t, `{"token": "abc", "roleId": 2, "login": "econ1"}`)
	assert.Equal(t, "/requests", economist.HomeRoute())

	anonymous, _, _ := newStore(t, "")
	assert.Equal(t, "/requests", anonymous.HomeRoute())
}
