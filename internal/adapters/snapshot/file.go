package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"
	"cattle-records/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Document es el contenido de un archivo de snapshot (YAML o JSON por extensión).
type Document struct {
	MasterData map[string]map[int]string `yaml:"masterData" json:"masterData"`
	Records    []records.Record          `yaml:"records" json:"records"`
}

// NewDocument arma un Document desde tablas + registros.
func NewDocument(t masterdata.Tables, recs []records.Record) Document {
	doc := Document{
		MasterData: map[string]map[int]string{},
		Records:    recs,
	}
	for c, m := range t {
		if len(m) == 0 {
			continue
		}
		entries := make(map[int]string, len(m))
		for id, name := range m {
			entries[id] = name
		}
		doc.MasterData[string(c)] = entries
	}
	return doc
}

// Tables convierte masterData ignorando categorías desconocidas.
func (d Document) Tables() masterdata.Tables {
	t := masterdata.NewTables()
	for name, entries := range d.MasterData {
		c, ok := masterdata.ParseCategory(name)
		if !ok {
			continue
		}
		for id, n := range entries {
			t.Set(c, id, n)
		}
	}
	return t
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Read parsea el archivo completo.
func Read(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read snapshot: %w", err)
	}

	var doc Document
	if isJSON(path) {
		err = json.Unmarshal(raw, &doc)
	} else {
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("parse snapshot %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Write serializa según la extensión del path.
func Write(path string, doc Document) error {
	var (
		raw []byte
		err error
	)
	if isJSON(path) {
		raw, err = json.MarshalIndent(doc, "", "  ")
	} else {
		raw, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

// FileSource sirve registros y master data desde un archivo.
// El documento se cachea; con Watch, cada cambio del archivo lo invalida.
type FileSource struct {
	path string
	log  logger.Logger

	mu     sync.Mutex
	doc    Document
	loaded bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

var (
	_ records.Source    = (*FileSource)(nil)
	_ masterdata.Source = (*FileSource)(nil)
)

type Option func(*FileSource)

func WithLogger(l logger.Logger) Option {
	return func(s *FileSource) {
		if l != nil {
			s.log = l
		}
	}
}

// NewFileSource no toca el disco; el archivo se lee en el primer acceso.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{path: path, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Watch observa el directorio del archivo (los editores suelen reemplazarlo con rename).
// Sin Watch el archivo se lee una sola vez.
func (s *FileSource) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("snapshot watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.watcher = w
	s.done = done
	s.mu.Unlock()

	go s.watchLoop(w, done)
	return nil
}

func (s *FileSource) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Clean(s.path)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				s.invalidate()
				s.log.Debug("snapshot changed", map[string]any{"path": s.path, "op": event.Op.String()})
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			// eventos perdidos: mejor releer
			s.invalidate()
			s.log.Warn("snapshot watcher error", map[string]any{"path": s.path, "error": err.Error()})
		}
	}
}

func (s *FileSource) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// Close detiene el watcher (si hay) y espera a que termine el loop.
func (s *FileSource) Close() error {
	s.mu.Lock()
	w, done := s.watcher, s.done
	s.watcher, s.done = nil, nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	err := w.Close()
	<-done
	return err
}

func (s *FileSource) current() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.doc, nil
	}
	doc, err := Read(s.path)
	if err != nil {
		return Document{}, err
	}
	s.doc = doc
	s.loaded = true
	return doc, nil
}

func (s *FileSource) Snapshot(ctx context.Context) ([]records.Record, error) {
	doc, err := s.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(doc.Records), nil
}

func (s *FileSource) Tables(ctx context.Context) (masterdata.Tables, error) {
	doc, err := s.current()
	if err != nil {
		return nil, err
	}
	return doc.Tables(), nil
}
