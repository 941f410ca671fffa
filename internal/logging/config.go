package logging

const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "vfs.log"
	DefaultMaxSize    = 10 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
)

func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
	}
}

// Config holds logging settings. The shell prints to stdout, so logs go to
// stderr or to a rotated file, never to stdout.
type Config struct {
	Level      string `yaml:"level" env:"VFS_LOG_LEVEL" env-default:"info"`
	Format     string `yaml:"format" env:"VFS_LOG_FORMAT" env-default:"text"`
	Output     string `yaml:"output" env:"VFS_LOG_OUTPUT" env-default:"stderr"`
	FilePath   string `yaml:"filePath" env:"VFS_LOG_FILE_PATH" env-default:"vfs.log"`
	MaxSize    int    `yaml:"maxSize" env:"VFS_LOG_MAX_SIZE" env-default:"10"`
	MaxBackups int    `yaml:"maxBackups" env:"VFS_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"maxAge" env:"VFS_LOG_MAX_AGE" env-default:"7"`
	Compress   bool   `yaml:"compress" env:"VFS_LOG_COMPRESS"`
}
