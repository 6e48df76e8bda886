// Package session хранит аутентифицированную личность пользователя:
// в памяти на время работы процесса и в файле между запусками.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/logger"
	"github.com/procwise/backoffice-client/internal/models"
)

// Session — сохраняемая запись о входе.
type Session struct {
	Token           string             `json:"token"`
	RoleID          int                `json:"roleId"`
	Login           string             `json:"login"`
	AvailableAction *hypermedia.Action `json:"availableAction,omitempty"`
}

// Store управляет жизненным циклом сессии: Anonymous -> Authenticated -> Anonymous.
type Store struct {
	mu     sync.RWMutex
	path   string
	client *httpclient.Client

	current *Session
}

// NewStore создаёт хранилище и пытается восстановить сессию из файла.
// Неполная или повреждённая запись трактуется как отсутствие сессии.
func NewStore(path string, client *httpclient.Client) *Store {
	s := &Store{
		path:   path,
		client: client,
	}
	s.rehydrate()
	return s
}

// Login выполняет вход и сохраняет сессию в памяти и в файле.
func (s *Store) Login(ctx context.Context, login, password string) (*Session, error) {
	result, err := api.Login(ctx, s.client, login, password)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:           result.Token,
		RoleID:          result.RoleID,
		Login:           result.Login,
		AvailableAction: result.AvailableAction,
	}
	if sess.Login == "" {
		sess.Login = login
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.client.SetToken(sess.Token)
	if err := s.persist(sess); err != nil {
		logger.L().WithError(err).Warn("session: не удалось сохранить сессию в файл")
	}

	copied := *sess
	return &copied, nil
}

// Logout очищает сессию в памяти, в файле и токен клиента. Идемпотентен.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.client.ClearToken()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.L().WithError(err).Warn("session: не удалось удалить файл сессии")
	}
}

// HandleUnauthorized вызывается HTTP-клиентом на любой 401:
// сессия принудительно завершается.
func (s *Store) HandleUnauthorized() {
	if !s.IsAuthenticated() {
		return
	}
	logger.L().Info("session: получен 401, сессия завершена")
	s.Logout()
}

// Current возвращает копию текущей сессии либо nil.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// IsAuthenticated сообщает, есть ли активная сессия.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// HomeRoute возвращает стартовый раздел для роли. Единственное место,
// где клиент принимает решение по номеру роли: админ попадает в управление
// пользователями, остальные — в список заявок.
func (s *Store) HomeRoute() string {
	sess := s.Current()
	if sess != nil && sess.RoleID == models.RoleAdmin {
		return "/admin"
	}
	return "/requests"
}

// rehydrate восстанавливает сессию из файла. Запись без токена, логина или
// с невалидной ролью отбрасывается целиком: частичных сессий не бывает.
func (s *Store) rehydrate() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		logger.L().WithError(err).Debug("session: повреждённый файл сессии, игнорируем")
		return
	}

	if sess.Token == "" || sess.Login == "" || sess.RoleID <= 0 {
		return
	}

	if tokenExpired(sess.Token) {
		logger.L().Debug("session: сохранённый токен истёк, требуется повторный вход")
		return
	}

	s.current = &sess
	s.client.SetToken(sess.Token)
}

// persist записывает сессию в файл атомарно, права только для владельца.
func (s *Store) persist(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, s.path)
}

// tokenExpired проверяет срок действия JWT без проверки подписи.
// Непрозрачные (не-JWT) токены считаются действительными — решает сервер.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
