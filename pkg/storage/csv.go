package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"ppg-monitor/pkg/model"
)

const DefaultCSVFile = "sensors.csv"

// CSVStore 以追加方式写入读数日志, 首次写入时补上表头
type CSVStore struct {
	path  string
	mutex sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultCSVFile
	}
	return &CSVStore{path: path}
}

func (cs *CSVStore) Path() string {
	return cs.path
}

// EnsureHeader 文件不存在时创建并写入表头, 已存在则不动
func (cs *CSVStore) EnsureHeader() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return cs.ensureHeader()
}

func (cs *CSVStore) ensureHeader() error {
	if _, err := os.Stat(cs.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat csv file %q: %w", cs.path, err)
	}
	f, err := os.OpenFile(cs.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create csv file %q: %w", cs.path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(model.FieldNames); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (cs *CSVStore) Append(r *model.Reading) error {
	if r == nil {
		return ErrNilReading
	}
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	if err := cs.ensureHeader(); err != nil {
		return err
	}
	f, err := os.OpenFile(cs.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open csv file %q: %w", cs.path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(r.Record()); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (cs *CSVStore) Open() (io.ReadCloser, error) {
	f, err := os.Open(cs.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCSVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open csv file %q: %w", cs.path, err)
	}
	return f, nil
}
