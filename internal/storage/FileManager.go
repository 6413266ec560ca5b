package storage

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/storage/interfaces"
	"blueghost/internal/structures"
	"errors"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

const (
	OnCorruptFail       = "fail"
	OnCorruptQuarantine = "quarantine"
)

// ErrStorageCorrupt is returned when the store file exists but cannot be decoded.
var ErrStorageCorrupt = errors.New("story store is corrupt")

type FileManager struct {
	path       string
	onCorrupt  string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       conf.Persistence.FilePath,
		onCorrupt:  conf.Persistence.OnCorrupt,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

func (f *FileManager) Path() string {
	return f.path
}

// Load reads the whole store. A missing file is initialized to an empty store.
func (f *FileManager) Load() (models.Storage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeStore, "Store %s not found, initializing empty store", f.path)
			storage := models.Storage{}
			return storage, f.Save(storage)
		}
		return nil, err
	}

	storage, err := f.decode(data)
	if err == nil {
		return storage, nil
	}

	if f.onCorrupt != OnCorruptQuarantine {
		f.logger.Errorf(providers.TypeStore, "Store %s is unreadable: %v", f.path, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, f.path, err)
	}

	quarantined := fmt.Sprintf("%s.corrupt-%d", f.path, f.now().Unix())
	if renameErr := os.Rename(f.path, quarantined); renameErr != nil {
		return nil, fmt.Errorf("%w: quarantine failed: %v", ErrStorageCorrupt, renameErr)
	}
	f.logger.Warnf(providers.TypeStore, "Store %s is unreadable (%v), moved to %s", f.path, err, quarantined)

	storage = models.Storage{}
	return storage, f.Save(storage)
}

func (f *FileManager) decode(data []byte) (models.Storage, error) {
	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var storage models.Storage
	if err := json.Unmarshal(raw, &storage); err != nil {
		return nil, err
	}
	if storage == nil {
		// a literal null is not a store
		return nil, errors.New("store root is not an object")
	}
	return storage, nil
}

// Save rewrites the whole store through a temp file and rename.
func (f *FileManager) Save(storage models.Storage) error {
	if storage == nil {
		storage = models.Storage{}
	}

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
