package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
)

var _ config.ConfigLoader = (*FileConfigService)(nil)

type FileConfigService struct {
	lookupEnv func(string) (string, bool)
	homeDir   func() (string, error)
}

func NewFileConfigService() *FileConfigService {
	return &FileConfigService{
		lookupEnv: os.LookupEnv,
		homeDir:   os.UserHomeDir,
	}
}

// Load reads the config file named by the selection (or the env/default path),
// applies environment overrides, then explicit overrides, and validates the
// result. A missing file at the default location yields defaults; a missing
// file that was asked for explicitly is an error.
func (s *FileConfigService) Load(_ context.Context, selection config.Selection) (config.Config, error) {
	path, explicit, err := s.resolveConfigPath(selection.Path)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := decodeConfigFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
		if explicit {
			return config.Config{}, notFoundError(fmt.Sprintf("config file %q not found", path))
		}
		cfg = config.Config{}
	}

	if err := applyEnvOverrides(&cfg, s.lookupEnv); err != nil {
		return config.Config{}, err
	}
	if err := applyOverrides(&cfg, selection.Overrides); err != nil {
		return config.Config{}, err
	}

	cfg = normalizeConfig(cfg)
	cfg.DataDir, err = s.expandHome(cfg.DataDir)
	if err != nil {
		return config.Config{}, err
	}

	if err := validateConfig(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string) error {
	return faults.NewTypedError(faults.NotFoundError, message, nil)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
