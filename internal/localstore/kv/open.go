package kv

import (
	"fmt"

	"GLOBETROTTER_BACK-END/internal/config"
)

// Open returns the medium selected by cfg.Driver.
func Open(cfg config.LocalStoreConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath)
	case "valkey":
		return NewValkey(cfg.ValkeyURI)
	default:
		return nil, fmt.Errorf("unknown local store driver %q", cfg.Driver)
	}
}
