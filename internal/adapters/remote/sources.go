package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"
	"cattle-records/internal/platform/httpclient"
)

// Paths del servicio de datos del rodeo.
const (
	RecordsPath    = "/api/cattle"
	MasterDataPath = "/api/master-data"
)

// RecordSource trae el snapshot completo de registros por REST.
type RecordSource struct {
	client *httpclient.Client
	path   string
}

var _ records.Source = (*RecordSource)(nil)

func NewRecordSource(client *httpclient.Client) *RecordSource {
	return &RecordSource{client: client, path: RecordsPath}
}

// recordsEnvelope acepta tanto `[...]` como `{"data":[...]}`.
type recordsEnvelope struct {
	Data []records.Record `json:"data"`
}

func (s *RecordSource) Snapshot(ctx context.Context) ([]records.Record, error) {
	var raw json.RawMessage
	if err := s.client.GetJSON(ctx, s.path, &raw); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	var list []records.Record
	if isArray(raw) {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return list, nil
	}

	var env recordsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if env.Data == nil {
		return []records.Record{}, nil
	}
	return env.Data, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// MasterDataSource trae las tablas de referencia.
// Formato: {"breed":[{"id":1,"name":"Gir"}], "location":[...], ...}
type MasterDataSource struct {
	client *httpclient.Client
	path   string
}

var _ masterdata.Source = (*MasterDataSource)(nil)

func NewMasterDataSource(client *httpclient.Client) *MasterDataSource {
	return &MasterDataSource{client: client, path: MasterDataPath}
}

type masterDataEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s *MasterDataSource) Tables(ctx context.Context) (masterdata.Tables, error) {
	var payload map[string][]masterDataEntry
	if err := s.client.GetJSON(ctx, s.path, &payload); err != nil {
		return nil, fmt.Errorf("fetch master data: %w", err)
	}

	t := masterdata.NewTables()
	for name, entries := range payload {
		c, ok := masterdata.ParseCategory(name)
		if !ok {
			continue
		}
		for _, e := range entries {
			t.Set(c, e.ID, e.Name)
		}
	}
	return t, nil
}
