package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("layout not found")

// Blob es lo que se persiste: columnas serializadas y versión, en claves separadas.
type Blob struct {
	Columns []byte
	Version string
}

// Store persiste el layout de un perfil (badger, redis, postgres, memoria).
type Store interface {
	Load(ctx context.Context, profileID string) (Blob, error)
	Save(ctx context.Context, profileID string, b Blob) error
}

// Nombres de clave para stores key-value.
const (
	columnsKeySuffix = "columns"
	versionKeySuffix = "version"
	keyPrefix        = "cattle:layout"
)

func ColumnsKey(profileID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, profileID, columnsKeySuffix)
}

func VersionKey(profileID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, profileID, versionKeySuffix)
}

// Encode serializa el set como [{key,label,visible,order}].
func Encode(cols []Column) (Blob, error) {
	b, err := json.Marshal(cols)
	if err != nil {
		return Blob{}, fmt.Errorf("encode layout: %w", err)
	}
	return Blob{Columns: b, Version: SchemaVersion}, nil
}

// Decode no valida versión ni cardinalidad; eso lo decide Manager.Load.
func Decode(b Blob) ([]Column, error) {
	var cols []Column
	if err := json.Unmarshal(b.Columns, &cols); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return cols, nil
}
