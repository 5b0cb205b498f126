// Пакет session. Сохранение и восстановление сессии между запусками
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iurnickita/shortlink/internal/shortlink/model"
	"github.com/iurnickita/shortlink/internal/shortlink/store"
)

// Ключи хранилища
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store хранит пару {token, user}
type Store struct {
	repo store.Repository
}

func NewStore(repo store.Repository) *Store {
	return &Store{repo: repo}
}

// Save записывает токен и пользователя.
// Если не удалась любая из записей, оба ключа удаляются:
// токен одного пользователя не должен остаться в паре с другим
func (s *Store) Save(ctx context.Context, sess model.Session) error {
	user, err := json.Marshal(sess.User())
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, KeyToken, sess.Token()); err != nil {
		return s.discard(ctx, fmt.Errorf("failed to save token: %w", err))
	}
	if err := s.repo.Set(ctx, KeyUser, string(user)); err != nil {
		return s.discard(ctx, fmt.Errorf("failed to save user: %w", err))
	}
	return nil
}

func (s *Store) discard(ctx context.Context, err error) error {
	if clearErr := s.Clear(ctx); clearErr != nil {
		return errors.Join(err, fmt.Errorf("failed to clear session: %w", clearErr))
	}
	return err
}

// Load возвращает сессию, только если оба ключа на месте и пользователь разбирается.
// Любая ошибка чтения означает отсутствие сессии
func (s *Store) Load(ctx context.Context) (model.Session, bool) {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil || token == "" {
		return model.Session{}, false
	}
	blob, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return model.Session{}, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		return model.Session{}, false
	}

	sess, err := model.NewSession(user, token)
	if err != nil {
		return model.Session{}, false
	}
	return sess, true
}

// Clear удаляет оба ключа
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyToken, KeyUser)
}
