package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

type fakeStore struct {
	mu           sync.Mutex
	casaDoma     []domain.CasaDoma
	measurements []domain.Measurement
	listErr      error
	insertErr    error
	limits       []int
	nextID       int64
}

func (f *fakeStore) ListCasaDoma(_ context.Context, limit int) ([]domain.CasaDoma, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return f.casaDoma, f.listErr
}

func (f *fakeStore) ListMeasurements(_ context.Context, limit int) ([]domain.Measurement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return f.measurements, f.listErr
}

func (f *fakeStore) InsertCasaDoma(_ context.Context, c *domain.CasaDoma) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	c.ID = f.nextID
	f.casaDoma = append(f.casaDoma, *c)
	return nil
}

func (f *fakeStore) InsertMeasurement(_ context.Context, m *domain.Measurement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	m.ID = f.nextID
	f.measurements = append(f.measurements, *m)
	return nil
}

type fakeNotifier struct {
	alerts []float64
	err    error
}

func (f *fakeNotifier) SendConsumptionAlert(_ context.Context, _ domain.CasaDoma, activeWs float64) error {
	f.alerts = append(f.alerts, activeWs)
	return f.err
}

type fakeRuns struct {
	runs   []domain.AnalysisRun
	putErr error
}

func (f *fakeRuns) PutRun(_ context.Context, run domain.AnalysisRun) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) ListRuns(_ context.Context, kind string) ([]domain.AnalysisRun, error) {
	var out []domain.AnalysisRun
	for _, r := range f.runs {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSnapshots struct {
	uploads map[string][]byte
}

func (f *fakeSnapshots) UploadSnapshot(_ context.Context, key string, data []byte) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = data
	return "https://snapshots.example/" + key, nil
}

func (f *fakeSnapshots) ListSnapshots(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.uploads {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeSnapshots) DownloadSnapshot(_ context.Context, key string) ([]byte, error) {
	b, ok := f.uploads[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSnapshot, key)
	}
	return b, nil
}

type cannedTransport struct {
	replies map[string]string
	calls   []string
	inputs  map[string][]byte
}

func (c *cannedTransport) Call(_ context.Context, op string, in, out any) error {
	c.calls = append(c.calls, op)
	if c.inputs == nil {
		c.inputs = map[string][]byte{}
	}
	b, _ := json.Marshal(in)
	c.inputs[op] = b
	return json.Unmarshal([]byte(c.replies[op]), out)
}
