package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VDOM"

// FileName is the base name of the optional config file.
const FileName = "vdom"

// Config holds all configuration for the renderer and the CLI.
type Config struct {
	// Renderer holds the renderer settings.
	Renderer RendererConfig `mapstructure:"renderer"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// RendererConfig holds renderer settings.
type RendererConfig struct {
	// SyncUpdates renders AsyncRender prop updates immediately.
	SyncUpdates bool `mapstructure:"sync_updates" default:"true"`
	// Debug hands the logger to the renderer.
	Debug bool `mapstructure:"debug" default:"false"`
}

// Options returns renderer options for these settings. log is only used
// when Debug is set.
func (c RendererConfig) Options(log *zap.Logger) core.Options {
	opts := core.DefaultOptions()
	opts.SyncComponentUpdates = c.SyncUpdates
	if c.Debug {
		opts.Logger = log
	}
	return opts
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Validate reports settings that cannot be applied.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Log.Level) {
		return &errors.Error{
			Op:   "config.Validate",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(validLevels, ", ")),
		}
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		return &errors.Error{
			Op:   "config.Validate",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("log.format %q is not one of %s", c.Log.Format, strings.Join(validFormats, ", ")),
		}
	}
	return nil
}

// Load loads configuration from dir and the environment.
func Load(dir string) (*Config, error) {
	envPath := dir + "/.env"
	if dir == "." || dir == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName(FileName)
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, &errors.Error{Op: "config.Load", Kind: errors.KindConfig, Err: err}
		}
	}

	// Map environment variables to nested keys (e.g. VDOM_LOG_LEVEL -> log.level)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &errors.Error{Op: "config.Load", Kind: errors.KindConfig, Err: err}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
