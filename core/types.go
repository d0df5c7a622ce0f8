package core

import (
	"io"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/internal/app/kinds"
	"github.com/crmarques/datashelf/repository"
	"github.com/go-logr/logr"
)

// DatashelfContext holds the services a command needs once configuration
// has been resolved. History is nil for stores without version history.
type DatashelfContext struct {
	Config         config.Config
	ResourceStore  repository.ResourceStore
	RepositorySync repository.RepositorySync
	History        repository.RepositoryHistoryReader
	Kinds          *kinds.Service
	Logger         logr.Logger
}

type BootstrapConfig struct {
	ConfigPath string
	Overrides  map[string]string
	// Debug forces the debug log level regardless of configuration.
	Debug     bool
	LogWriter io.Writer
}
