package file

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crmarques/datashelf/config"
)

var overrideSetters = map[string]func(*config.Config, string){
	"data_dir":                    setDataDir,
	"repository.backend":          setRepositoryBackend,
	"repository.git.author_name":  setRepositoryGitAuthorName,
	"repository.git.author_email": setRepositoryGitAuthorEmail,
	"log.level":                   setLogLevel,
	"log.format":                  setLogFormat,
}

// applyEnvOverrides maps DATASHELF_<KEY> onto the override keys, where KEY is
// the override key upper-cased with dots turned into underscores.
func applyEnvOverrides(cfg *config.Config, lookupEnv func(string) (string, bool)) error {
	for _, key := range sortedOverrideKeys() {
		value, ok := lookupEnv(envVarForKey(key))
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		overrideSetters[key](cfg, strings.TrimSpace(value))
	}
	return nil
}

func applyOverrides(cfg *config.Config, overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		setter, ok := overrideSetters[key]
		if !ok {
			return unknownOverrideError(key)
		}
		value := strings.TrimSpace(overrides[key])
		if value == "" {
			continue
		}
		setter(cfg, value)
	}
	return nil
}

func envVarForKey(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func sortedOverrideKeys() []string {
	keys := make([]string, 0, len(overrideSetters))
	for key := range overrideSetters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func unknownOverrideError(key string) error {
	return validationError(fmt.Sprintf("unknown override key %q", key), nil)
}

func ensureGit(cfg *config.Config) *config.GitRepository {
	if cfg.Repository.Git == nil {
		cfg.Repository.Git = &config.GitRepository{}
	}
	return cfg.Repository.Git
}

func setDataDir(cfg *config.Config, value string) {
	cfg.DataDir = value
}

func setRepositoryBackend(cfg *config.Config, value string) {
	cfg.Repository.Backend = value
}

func setRepositoryGitAuthorName(cfg *config.Config, value string) {
	ensureGit(cfg).AuthorName = value
}

func setRepositoryGitAuthorEmail(cfg *config.Config, value string) {
	ensureGit(cfg).AuthorEmail = value
}

func setLogLevel(cfg *config.Config, value string) {
	cfg.Log.Level = value
}

func setLogFormat(cfg *config.Config, value string) {
	cfg.Log.Format = value
}
