package common

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

//go:embed config.schema.json
var configSchema []byte

// ConfigPathEnv names the environment variable holding the YAML config path.
const ConfigPathEnv = "RESUME_CONFIG"

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Extract  ExtractConfig  `yaml:"extract"`
	Fields   FieldsConfig   `yaml:"fields"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Export   ExportConfig   `yaml:"export"`
	Workers  WorkersConfig  `yaml:"workers"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // sqlite | pgx
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
}

// ExtractConfig selects and tunes the PDF text backends.
type ExtractConfig struct {
	Backends  []string      `yaml:"backends"` // tried in order
	MaxPages  int           `yaml:"max_pages"`
	Pdftotext string        `yaml:"pdftotext"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FieldsConfig extends the field extractor's lookup sets.
type FieldsConfig struct {
	NameWindow      int      `yaml:"name_window"`
	ExtraCities     []string `yaml:"extra_cities"`
	ExtraTitleWords []string `yaml:"extra_title_words"`
}

// IngestConfig controls directory discovery and watching.
type IngestConfig struct {
	Dir        string        `yaml:"dir"`
	SkipHidden bool          `yaml:"skip_hidden"`
	Debounce   time.Duration `yaml:"debounce"`
}

// ExportConfig controls the XLSX output.
type ExportConfig struct {
	Output        string `yaml:"output"`
	Sheet         string `yaml:"sheet"`
	FailuresSheet string `yaml:"failures_sheet"`
}

// WorkersConfig sizes the processing queue.
type WorkersConfig struct {
	Count          int           `yaml:"count"`
	QueueSize      int           `yaml:"queue_size"`
	ProcessTimeout time.Duration `yaml:"process_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:resumes.db?_pragma=busy_timeout(5000)",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		Server: ServerConfig{
			GRPCAddr: ":8080",
		},
		Extract: ExtractConfig{
			Backends:  []string{"gopdf", "pdftotext"},
			MaxPages:  constants.MaxPages,
			Pdftotext: "pdftotext",
			Timeout:   30 * time.Second,
		},
		Fields: FieldsConfig{
			NameWindow: 100,
		},
		Ingest: IngestConfig{
			Dir:        "datas",
			SkipHidden: true,
			Debounce:   2 * time.Second,
		},
		Export: ExportConfig{
			Output:        "resumes.xlsx",
			Sheet:         constants.ResultSheet,
			FailuresSheet: constants.FailureSheet,
		},
		Workers: WorkersConfig{
			Count:          4,
			QueueSize:      64,
			ProcessTimeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig layers defaults, the YAML file at path (or $RESUME_CONFIG), and environment
// variables, loading a .env file first when one exists. Callers apply flag overrides and
// then call Validate.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError(CodeConfig, "load .env", err)
	}

	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
		if err := cfg.mergeYAML(raw); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// mergeYAML validates raw against the config schema and decodes it over c.
func (c *Config) mergeYAML(raw []byte) error {
	if err := ValidateConfigFile(raw); err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return NewAppError(CodeConfig, "decode config file", errors.Join(ErrInvalidInput, err))
	}
	return nil
}

// ValidateConfigFile checks a YAML config document against the embedded JSON Schema.
func ValidateConfigFile(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return NewAppError(CodeConfig, "parse config file", errors.Join(ErrInvalidInput, err))
	}
	if doc == nil {
		return nil
	}
	// round-trip through JSON so numbers and maps have the shapes the validator expects
	b, err := json.Marshal(doc)
	if err != nil {
		return NewAppError(CodeConfig, "config file is not JSON-compatible", errors.Join(ErrInvalidInput, err))
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return NewAppError(CodeConfig, "config file is not JSON-compatible", errors.Join(ErrInvalidInput, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return NewAppError(CodeConfig, "config file does not match schema", errors.Join(ErrValidation, err))
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_URL", getEnv("DB_DSN", c.Database.DSN))
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Database.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", c.Database.DialTimeout)

	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)

	c.Extract.Backends = getEnvAsList("EXTRACT_BACKENDS", c.Extract.Backends)
	c.Extract.MaxPages = getEnvAsInt("EXTRACT_MAX_PAGES", c.Extract.MaxPages)
	c.Extract.Pdftotext = getEnv("PDFTOTEXT_BIN", c.Extract.Pdftotext)
	c.Extract.Timeout = getEnvAsDuration("EXTRACT_TIMEOUT", c.Extract.Timeout)

	c.Fields.NameWindow = getEnvAsInt("NAME_WINDOW", c.Fields.NameWindow)
	c.Fields.ExtraCities = getEnvAsList("EXTRA_CITIES", c.Fields.ExtraCities)
	c.Fields.ExtraTitleWords = getEnvAsList("EXTRA_TITLE_WORDS", c.Fields.ExtraTitleWords)

	c.Ingest.Dir = getEnv("DATA_DIR", c.Ingest.Dir)
	c.Ingest.SkipHidden = getEnvAsBool("INGEST_SKIP_HIDDEN", c.Ingest.SkipHidden)
	c.Ingest.Debounce = getEnvAsDuration("INGEST_DEBOUNCE", c.Ingest.Debounce)

	c.Export.Output = getEnv("EXPORT_OUTPUT", c.Export.Output)
	c.Export.Sheet = getEnv("EXPORT_SHEET", c.Export.Sheet)
	c.Export.FailuresSheet = getEnv("EXPORT_FAILURES_SHEET", c.Export.FailuresSheet)

	c.Workers.Count = getEnvAsInt("WORKERS", c.Workers.Count)
	c.Workers.QueueSize = getEnvAsInt("QUEUE_SIZE", c.Workers.QueueSize)
	c.Workers.ProcessTimeout = getEnvAsDuration("PROCESS_TIMEOUT", c.Workers.ProcessTimeout)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("database.driver", c.Database.Driver, OneOf("sqlite", "pgx")).
		Field("database.dsn", c.Database.DSN, Required).
		Field("database.max_open_conns", c.Database.MaxOpenConns, Positive).
		Field("extract.backends", c.Extract.Backends, Required, OneOf("gopdf", "pdftotext", "docconv")).
		Field("extract.max_pages", c.Extract.MaxPages, Positive).
		Field("fields.name_window", c.Fields.NameWindow, Positive).
		Field("ingest.dir", c.Ingest.Dir, Required).
		Field("export.output", c.Export.Output, Required).
		Field("export.sheet", c.Export.Sheet, Required).
		Field("export.failures_sheet", c.Export.FailuresSheet, Required).
		Field("workers.count", c.Workers.Count, Positive).
		Field("workers.queue_size", c.Workers.QueueSize, Positive).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("log.format", c.Log.Format, OneOf("json", "text"))
	if c.Export.Sheet == c.Export.FailuresSheet {
		v.errors = append(v.errors, ValidationError{Field: "export.failures_sheet", Value: c.Export.FailuresSheet, Message: "must differ from export.sheet"})
	}
	return ValidateAndReturnError(v)
}
