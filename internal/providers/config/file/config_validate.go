package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crmarques/datashelf/config"
)

func normalizeConfig(cfg config.Config) config.Config {
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir
	}

	cfg.Repository.Backend = strings.ToLower(strings.TrimSpace(cfg.Repository.Backend))
	if cfg.Repository.Backend == "" {
		cfg.Repository.Backend = config.BackendFilesystem
	}
	if cfg.Repository.Git != nil {
		git := *cfg.Repository.Git
		git.AuthorName = strings.TrimSpace(git.AuthorName)
		git.AuthorEmail = strings.TrimSpace(git.AuthorEmail)
		cfg.Repository.Git = &git
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = config.LogLevelInfo
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = config.LogFormatConsole
	}
	return cfg
}

func validateConfig(cfg config.Config) error {
	if !filepath.IsAbs(cfg.DataDir) {
		return validationError(fmt.Sprintf("data-dir %q must be an absolute path", cfg.DataDir), nil)
	}

	switch cfg.Repository.Backend {
	case config.BackendFilesystem, config.BackendGit:
	default:
		return validationError(
			fmt.Sprintf("repository.backend %q is invalid: use %s or %s", cfg.Repository.Backend, config.BackendFilesystem, config.BackendGit),
			nil,
		)
	}

	switch cfg.Log.Level {
	case config.LogLevelError, config.LogLevelWarn, config.LogLevelInfo, config.LogLevelDebug:
	default:
		return validationError(fmt.Sprintf("log.level %q is invalid: use error, warn, info, or debug", cfg.Log.Level), nil)
	}

	switch cfg.Log.Format {
	case config.LogFormatConsole, config.LogFormatJSON:
	default:
		return validationError(fmt.Sprintf("log.format %q is invalid: use console or json", cfg.Log.Format), nil)
	}
	return nil
}
