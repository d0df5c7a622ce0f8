package config

const (
	ConfigFileEnvVar  = "DATASHELF_CONFIG"
	DefaultConfigPath = "~/.datashelf/config.yaml"
	DefaultDataDir    = "~/.datashelf/data"

	EnvPrefix = "DATASHELF_"

	BackendFilesystem = "filesystem"
	BackendGit        = "git"

	LogLevelError = "error"
	LogLevelWarn  = "warn"
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	DefaultGitAuthorName  = "datashelf"
	DefaultGitAuthorEmail = "datashelf@local"
)

// Selection picks the config file to load and the overrides applied on top of
// it. Override keys use dotted snake_case, e.g. "repository.backend".
type Selection struct {
	Path      string
	Overrides map[string]string
}

type Config struct {
	DataDir    string     `yaml:"data-dir,omitempty"`
	Repository Repository `yaml:"repository,omitempty"`
	Log        Log        `yaml:"log,omitempty"`
}

type Repository struct {
	Backend string         `yaml:"backend,omitempty"`
	Git     *GitRepository `yaml:"git,omitempty"`
}

type GitRepository struct {
	AuthorName  string `yaml:"author-name,omitempty"`
	AuthorEmail string `yaml:"author-email,omitempty"`
}

type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// GitSettings returns the git section with defaults filled in.
func (r Repository) GitSettings() GitRepository {
	settings := GitRepository{}
	if r.Git != nil {
		settings = *r.Git
	}
	if settings.AuthorName == "" {
		settings.AuthorName = DefaultGitAuthorName
	}
	if settings.AuthorEmail == "" {
		settings.AuthorEmail = DefaultGitAuthorEmail
	}
	return settings
}
