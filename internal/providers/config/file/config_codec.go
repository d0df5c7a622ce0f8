package file

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/crmarques/datashelf/config"
	"go.yaml.in/yaml/v3"
)

func decodeConfigFile(path string) (config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
		return config.Config{}, internalError("failed to read config file", err)
	}
	return decodeConfig(data)
}

func decodeConfig(data []byte) (config.Config, error) {
	var cfg config.Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config.Config{}, validationError("invalid config yaml", err)
	}
	return cfg, nil
}

// resolveConfigPath reports whether the path was requested explicitly (flag
// or environment) as opposed to falling back to the default location.
func (s *FileConfigService) resolveConfigPath(explicitPath string) (string, bool, error) {
	path := strings.TrimSpace(explicitPath)
	explicit := path != ""
	if path == "" {
		if value, ok := s.lookupEnv(config.ConfigFileEnvVar); ok && strings.TrimSpace(value) != "" {
			path = strings.TrimSpace(value)
			explicit = true
		}
	}
	if path == "" {
		path = config.DefaultConfigPath
	}

	expanded, err := s.expandHome(path)
	if err != nil {
		return "", false, err
	}

	cleanPath := filepath.Clean(expanded)
	if cleanPath == "." {
		return "", false, validationError("config path is invalid", errors.New("resolved to current directory"))
	}
	return cleanPath, explicit, nil
}

func (s *FileConfigService) expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := s.homeDir()
	if err != nil {
		return "", internalError("failed to resolve user home directory", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~/")), nil
}
