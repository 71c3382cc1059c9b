package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/storage"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sale(id, date, customer, salesPerson, custType, group, item string, qty, price, total float64) domain.Sale {
	return domain.Sale{
		ID:              id,
		Date:            date,
		CustomerCode:    customer,
		CompanyName:     customer + " Co., Ltd.",
		SearchName:      customer,
		SalesPersonCode: salesPerson,
		CustType:        custType,
		PostingGroup:    group,
		VendorNo:        "V-" + group,
		Items:           []domain.SaleItem{{ItemCode: item, Description: "desc " + item, Quantity: qty, Price: price}},
		Total:           total,
	}
}

func storeWith(sales []domain.Sale, products []domain.Product) *DataStore {
	store := NewDataStore()
	store.Replace(&Snapshot{Sales: sales, Products: products})
	return store
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.ObjectInfo, 0, len(m.objects))
	i := 0
	for k, v := range m.objects {
		out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v)), LastModified: time.Unix(int64(i), 0)})
		i++
	}
	return out, nil
}

func (m *memoryStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	m.mu.Lock()
	data, ok := m.objects[key]
	m.mu.Unlock()
	if !ok {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o644)
}

func (m *memoryStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return os.ErrPermission
	}
	m.objects[key] = data
	return nil
}

type recordingWriter struct {
	mu   sync.Mutex
	rows map[string][][]string
	err  error
}

func (w *recordingWriter) Configured() bool { return true }

func (w *recordingWriter) AppendRow(ctx context.Context, sheetName string, row []string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return "", w.err
	}
	if w.rows == nil {
		w.rows = make(map[string][][]string)
	}
	w.rows[sheetName] = append(w.rows[sheetName], row)
	return "", nil
}
