package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cattle-records/internal/domain/layout"
	"cattle-records/internal/platform/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// LayoutStore guarda layouts en un directorio badger local.
// Columnas y versión van en claves separadas, escritas en la misma transacción.
type LayoutStore struct {
	db *badger.DB
}

var _ layout.Store = (*LayoutStore)(nil)

// badgerLogger adapta logger.Logger a badger.Logger.
type badgerLogger struct {
	log logger.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, items ...any)   { l.log.Error(line(msg, items), nil) }
func (l *badgerLogger) Warningf(msg string, items ...any) { l.log.Warn(line(msg, items), nil) }
func (l *badgerLogger) Infof(msg string, items ...any)    { l.log.Debug(line(msg, items), nil) }
func (l *badgerLogger) Debugf(msg string, items ...any)   { l.log.Debug(line(msg, items), nil) }

func line(msg string, items []any) string {
	return strings.TrimSpace(fmt.Sprintf(msg, items...))
}

// Open abre (o crea) el directorio. path vacío + inMemory=true para tests.
func Open(path string, inMemory bool, log logger.Logger) (*LayoutStore, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = &badgerLogger{log: log.With(map[string]any{"component": "badger"})}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &LayoutStore{db: db}, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(path, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func (s *LayoutStore) Close() error {
	return s.db.Close()
}

func (s *LayoutStore) Load(ctx context.Context, profileID string) (layout.Blob, error) {
	var b layout.Blob
	err := s.db.View(func(tx *badger.Txn) error {
		cols, err := getValue(tx, layout.ColumnsKey(profileID))
		if err != nil {
			return err
		}
		version, err := getValue(tx, layout.VersionKey(profileID))
		if err != nil {
			return err
		}
		b = layout.Blob{Columns: cols, Version: string(version)}
		return nil
	})
	if err != nil {
		return layout.Blob{}, err
	}
	return b, nil
}

func getValue(tx *badger.Txn, key string) ([]byte, error) {
	item, err := tx.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, layout.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (s *LayoutStore) Save(ctx context.Context, profileID string, b layout.Blob) error {
	return s.db.Update(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(layout.ColumnsKey(profileID)), b.Columns); err != nil {
			return err
		}
		return tx.Set([]byte(layout.VersionKey(profileID)), []byte(b.Version))
	})
}
