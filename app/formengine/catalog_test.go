package formengine

import (
	"context"
	"errors"
	"sync"
)

// fakeCatalog adalah ModelCatalog in-memory untuk tes paket ini.
type fakeCatalog struct {
	mu          sync.Mutex
	models      []ModelInfo
	fields      map[string][]string
	records     map[string][]Record
	failRecords map[string]error

	fieldCalls  map[string]int
	recordCalls map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		models: []ModelInfo{
			{Key: "athlete", Name: "Atlet"},
			{Key: "coach", Name: "Pelatih"},
			{Key: "cabor", Name: "Cabang Olahraga"},
		},
		fields: map[string][]string{
			"athlete": {"id", "name", "coach_id", "coach_name", "berat", "tinggi"},
			"coach":   {"id", "name", "license"},
			"cabor":   {"id", "name"},
		},
		records: map[string][]Record{
			"athlete": {
				{"id": 5, "name": "Andi", "coach_name": "Budi", "berat": 70, "tinggi": 175},
				{"id": 6, "name": "Sari", "coach_name": "Citra", "berat": 52, "tinggi": 160},
			},
			"coach": {
				{"id": 1, "name": "Budi", "license": "A"},
				{"id": 2, "name": "Citra"},
			},
			"cabor": {
				{"id": 10, "name": "Atletik"},
				{"id": 11, "name": "Renang"},
			},
		},
		failRecords: map[string]error{},
		fieldCalls:  map[string]int{},
		recordCalls: map[string]int{},
	}
}

func (c *fakeCatalog) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return c.models, nil
}

func (c *fakeCatalog) ListModelFields(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fieldCalls[key]++
	fs, ok := c.fields[key]
	if !ok {
		return nil, errors.New("model tidak ada")
	}
	return fs, nil
}

func (c *fakeCatalog) ListModelRecords(ctx context.Context, key string) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recordCalls[key]++
	if err := c.failRecords[key]; err != nil {
		return nil, err
	}
	return c.records[key], nil
}
