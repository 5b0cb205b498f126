// Пакет store. Постоянное хранилище ключ-значение клиента
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/iurnickita/shortlink/internal/shortlink/store/config"
)

// Интерфейс

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var (
	ErrNotFound = errors.New("data not found")
)

func newErrNotFound(key string) error {
	return fmt.Errorf("%w for key = %s", ErrNotFound, key)
}

func NewStore(cfg config.Config) (Repository, error) {
	if cfg.Scope == "" {
		cfg.Scope = config.DefaultScope
	}
	switch cfg.StoreType {
	case config.StoreTypeFile:
		if cfg.Filename != "" {
			return NewStoreFile(cfg)
		}
	case config.StoreTypeDB:
		if cfg.DBDsn != "" {
			return NewStoreDB(cfg)
		}
	}
	return NewStoreVar(cfg)
}

// Реализация с хранением в переменной

type StoreVar struct {
	mux  *sync.Mutex
	data map[string]string
}

func NewStoreVar(cfg config.Config) (*StoreVar, error) {
	return &StoreVar{
		mux:  &sync.Mutex{},
		data: make(map[string]string),
	}, nil
}

func (s *StoreVar) Get(ctx context.Context, key string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	value, ok := s.data[key]
	if !ok {
		return "", newErrNotFound(key)
	}
	return value, nil
}

func (s *StoreVar) Set(ctx context.Context, key, value string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.data[key] = value
	return nil
}

func (s *StoreVar) Delete(ctx context.Context, keys ...string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *StoreVar) Close() error {
	return nil
}

// Реализация с хранением в файле
//
// Файл содержит JSON-объект {scope: {key: value}} и перезаписывается целиком

type StoreFile struct {
	mux      *sync.Mutex
	filename string
	scope    string
	data     map[string]map[string]string
}

func NewStoreFile(cfg config.Config) (*StoreFile, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o700); err != nil {
		return nil, err
	}

	data := map[string]map[string]string{}
	content, err := os.ReadFile(cfg.Filename)
	switch {
	case err == nil:
		// испорченный файл читается как пустой
		if err := json.Unmarshal(content, &data); err != nil {
			data = map[string]map[string]string{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	return &StoreFile{
		mux:      &sync.Mutex{},
		filename: cfg.Filename,
		scope:    cfg.Scope,
		data:     data,
	}, nil
}

func (s *StoreFile) Get(ctx context.Context, key string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	value, ok := s.data[s.scope][key]
	if !ok {
		return "", newErrNotFound(key)
	}
	return value, nil
}

func (s *StoreFile) Set(ctx context.Context, key, value string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	next := s.clone()
	if next[s.scope] == nil {
		next[s.scope] = map[string]string{}
	}
	next[s.scope][key] = value

	return s.commit(next)
}

func (s *StoreFile) Delete(ctx context.Context, keys ...string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.data[s.scope]; !ok {
		return nil
	}

	next := s.clone()
	scoped := next[s.scope]
	for _, key := range keys {
		delete(scoped, key)
	}
	if len(scoped) == 0 {
		delete(next, s.scope)
	}

	return s.commit(next)
}

func (s *StoreFile) Close() error {
	return nil
}

// clone копирует данные. Изменения делаются в копии
func (s *StoreFile) clone() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s.data))
	for scope, kv := range s.data {
		out[scope] = maps.Clone(kv)
	}
	return out
}

// commit записывает next на диск и только после этого заменяет им данные в памяти
func (s *StoreFile) commit(next map[string]map[string]string) error {
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// flush записывает данные во временный файл и подменяет им основной
func (s *StoreFile) flush(data map[string]map[string]string) error {
	content, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filename), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.filename)
}

// Реализация с хранением в базе данных

type StoreDB struct {
	scope    string
	database *sql.DB
}

const createTableQuery = "CREATE TABLE IF NOT EXISTS shortlink_kv (" +
	" scope VARCHAR (64) NOT NULL," +
	" name VARCHAR (64) NOT NULL," +
	" data TEXT NOT NULL," +
	" PRIMARY KEY (scope, name)" +
	" );"

// driverName postgres-адреса обслуживает pgx, все остальное - файл SQLite
func driverName(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

func NewStoreDB(cfg config.Config) (*StoreDB, error) {
	db, err := sql.Open(driverName(cfg.DBDsn), cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createTableQuery); err != nil {
		db.Close()
		return nil, err
	}

	return &StoreDB{
		scope:    cfg.Scope,
		database: db,
	}, nil
}

func (s *StoreDB) Get(ctx context.Context, key string) (string, error) {
	var value string
	row := s.database.QueryRowContext(ctx,
		"SELECT data FROM shortlink_kv"+
			" WHERE scope = $1 AND name = $2",
		s.scope, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", newErrNotFound(key)
		}
		return "", err
	}
	return value, nil
}

func (s *StoreDB) Set(ctx context.Context, key, value string) error {
	_, err := s.database.ExecContext(ctx,
		"INSERT INTO shortlink_kv (scope, name, data)"+
			" VALUES ($1, $2, $3)"+
			" ON CONFLICT (scope, name) DO UPDATE SET data = excluded.data",
		s.scope, key, value)
	return err
}

func (s *StoreDB) Delete(ctx context.Context, keys ...string) error {
	tx, err := s.database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, key := range keys {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM shortlink_kv"+
				" WHERE scope = $1 AND name = $2",
			s.scope, key)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *StoreDB) Close() error {
	return s.database.Close()
}
