package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Plausible   PlausibleConfig   `mapstructure:"plausible" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Output      OutputConfig      `mapstructure:"output" validate:"required"`
	Refresh     RefreshConfig     `mapstructure:"refresh" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,loglevel"`
}

// PlausibleConfig holds the analytics provider connection settings.
type PlausibleConfig struct {
	APIURL         string `mapstructure:"api_url" validate:"required,url"`
	SiteID         string `mapstructure:"site_id" validate:"required"`
	APIKey         string `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,min=1,max=300"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// OutputConfig names the files published into file storage.
type OutputConfig struct {
	SnapshotKey string `mapstructure:"snapshot_key" validate:"required"`
	HTMLKey     string `mapstructure:"html_key" validate:"required"`
}

// RefreshConfig controls the background rebuild in serve mode.
type RefreshConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes" validate:"required,min=1"`
}
