package records

import (
	"fmt"

	"clinicd/internal/providers"
	"clinicd/internal/records/interfaces"
	"clinicd/internal/structures"
)

// NewRecordStore selects the persistence backend from config.
func NewRecordStore(conf *structures.Config, logger providers.Logger) (interfaces.RecordStoreInterface, error) {
	switch conf.Storage.Backend {
	case "sqlite":
		return NewSQLiteStore(conf.Storage.FilePath, logger)
	case "file":
		compressor, err := NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		return NewFileStore(conf.Storage.FilePath, compressor, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}
