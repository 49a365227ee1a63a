package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownPage     = errors.New("unknown page")
	ErrUnknownSnapshot = errors.New("unknown snapshot")
)

const (
	PageElectricalConsumption = "electrical-consumption"
	PagePrototype             = "prototype"
)

type ExportService struct {
	pages *PageService
	store SnapshotStore
	now   func() time.Time
}

func newExportService(pages *PageService, store SnapshotStore) *ExportService {
	return &ExportService{pages: pages, store: store, now: time.Now}
}

type Snapshot struct {
	Page string `json:"page"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

func snapshotPrefix(page string) string { return "snapshots/" + page + "/" }

func (s *ExportService) check(page string) error {
	if page != PageElectricalConsumption && page != PagePrototype {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	if s.store == nil {
		return ErrCloudDisabled
	}
	return nil
}

// Snapshot uploads the current loader output of a page as JSON.
func (s *ExportService) Snapshot(ctx context.Context, page string) (*Snapshot, error) {
	if err := s.check(page); err != nil {
		return nil, err
	}
	var (
		payload any
		rows    int
	)
	switch page {
	case PageElectricalConsumption:
		data := s.pages.ElectricalConsumption(ctx)
		payload, rows = data, len(data.CasaDoma)
	case PagePrototype:
		data := s.pages.Prototype(ctx)
		payload, rows = data, len(data.Mediciones)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	key := snapshotPrefix(page) + s.now().UTC().Format(time.RFC3339) + ".json"
	url, err := s.store.UploadSnapshot(ctx, key, b)
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}
	return &Snapshot{Page: page, Key: key, URL: url, Rows: rows}, nil
}

func (s *ExportService) List(ctx context.Context, page string) ([]string, error) {
	if err := s.check(page); err != nil {
		return nil, err
	}
	keys, err := s.store.ListSnapshots(ctx, snapshotPrefix(page))
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Get returns a stored snapshot of page by its file name.
func (s *ExportService) Get(ctx context.Context, page, name string) ([]byte, error) {
	if err := s.check(page); err != nil {
		return nil, err
	}
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSnapshot, name)
	}
	return s.store.DownloadSnapshot(ctx, snapshotPrefix(page)+name)
}
