package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig configures where inspection records are read from.
type SourceConfig struct {
	Candidates  []string          `yaml:"candidates" mapstructure:"candidates"`
	Sheets      []string          `yaml:"sheets" mapstructure:"sheets"`
	Encodings   []string          `yaml:"encodings" mapstructure:"encodings"`
	Delimiter   string            `yaml:"delimiter" mapstructure:"delimiter"`
	SQLiteTable string            `yaml:"sqlite_table" mapstructure:"sqlite_table"`
	UploadDir   string            `yaml:"upload_dir" mapstructure:"upload_dir"`
	Columns     map[string]string `yaml:"columns" mapstructure:"columns"` // extra header -> field
}

// RenderConfig configures the certificate image and the record view.
type RenderConfig struct {
	Title            string   `yaml:"title" mapstructure:"title"`
	Locale           string   `yaml:"locale" mapstructure:"locale"`
	LogoPath         string   `yaml:"logo_path" mapstructure:"logo_path"`
	FontPaths        []string `yaml:"font_paths" mapstructure:"font_paths"`
	HeadingFontPaths []string `yaml:"heading_font_paths" mapstructure:"heading_font_paths"`
	Concurrency      int      `yaml:"concurrency" mapstructure:"concurrency"`

	Manufacturer     string `yaml:"manufacturer" mapstructure:"manufacturer"`
	InspectionMethod string `yaml:"inspection_method" mapstructure:"inspection_method"`
	CertifyingBody   string `yaml:"certifying_body" mapstructure:"certifying_body"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port                int      `yaml:"port" mapstructure:"port"`
	AccessKey           string   `yaml:"access_key" mapstructure:"access_key"`
	AllowedOrigins      []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	FailedAuthPerMinute int      `yaml:"failed_auth_per_minute" mapstructure:"failed_auth_per_minute"`
	MaxUploadMB         int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultFontPaths are tried in order for a CJK-capable body font.
var DefaultFontPaths = []string{
	"simhei.ttf",
	"SimHei.ttf",
	"msyh.ttf",
	"msyh.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"C:/Windows/Fonts/simhei.ttf",
}

// DefaultHeadingFontPaths are tried for the certificate title before the
// body fonts.
var DefaultHeadingFontPaths = []string{
	"msyhbd.ttc",
	"msyhbd.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Bold.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"C:/Windows/Fonts/msyhbd.ttc",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CERTLOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.candidates", []string{"qzmx.xlsx", "ND曲轴.xlsx", "data.xlsx", "data.csv"})
	v.SetDefault("source.sheets", []string{"CCS"})
	v.SetDefault("source.encodings", []string{"utf-8", "gbk"})
	v.SetDefault("source.delimiter", ",")
	v.SetDefault("source.sqlite_table", "records")
	v.SetDefault("source.upload_dir", "uploads")
	v.SetDefault("render.title", "ND CRANKSHAFT DATA REPORT")
	v.SetDefault("render.locale", "zh")
	v.SetDefault("render.logo_path", "ccs_logo.png")
	v.SetDefault("render.font_paths", DefaultFontPaths)
	v.SetDefault("render.heading_font_paths", DefaultHeadingFontPaths)
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.manufacturer", "CRRC ZJ")
	v.SetDefault("render.inspection_method", "UT  MT")
	v.SetDefault("render.certifying_body", "CCS")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.failed_auth_per_minute", 10)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "lookup":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be between 1 and 65535")
		}
		if c.Server.FailedAuthPerMinute < 0 {
			errs = append(errs, "server.failed_auth_per_minute must be >= 0")
		}
		if c.Server.MaxUploadMB <= 0 {
			errs = append(errs, "server.max_upload_mb must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(c.Source.Candidates) == 0 && c.Source.UploadDir == "" {
		errs = append(errs, "source.candidates or source.upload_dir is required")
	}
	if len([]rune(c.Source.Delimiter)) > 1 {
		errs = append(errs, "source.delimiter must be a single character")
	}
	if c.Render.Concurrency < 1 || c.Render.Concurrency > 64 {
		errs = append(errs, "render.concurrency must be between 1 and 64")
	}
	switch c.Render.Locale {
	case "", "zh", "en":
	default:
		errs = append(errs, "render.locale must be zh or en")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter, or 0 for the default.
func (s SourceConfig) DelimiterRune() rune {
	for _, r := range s.Delimiter {
		return r
	}
	return 0
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
