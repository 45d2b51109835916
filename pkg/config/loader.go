package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes environment variables that override configuration
	EnvPrefix = "NESTBOX_"
	// ProjectFile is the configuration file looked up in the project directory
	ProjectFile = ".nestbox.toml"
)

// Options controls where configuration is read from
type Options struct {
	// UserFile overrides the user configuration path
	UserFile string
	// ProjectDir is searched for the project file, defaulting to the
	// working directory
	ProjectDir string
	// File is an explicit configuration file loaded after the project file
	File string
	// Overrides are flattened keys, typically from command-line flags
	Overrides map[string]interface{}
}

// UserConfigPath returns the user configuration file location
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "nestbox", "config.toml")
}

// Default returns the embedded defaults. It panics if they do not parse.
func Default() *Config {
	k, err := defaults()
	if err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads every configuration layer, later layers winning, then
// validates the result
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")

	// 1. Embedded defaults
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	// 2. User config
	userFile := opts.UserFile
	if userFile == "" {
		userFile = UserConfigPath()
	}
	if err := loadFileIfExists(k, userFile); err != nil {
		return nil, err
	}

	// 3. Project config, TOML or YAML
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, name := range []string{ProjectFile, ".nestbox.yaml", ".nestbox.yml"} {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			break
		}
	}

	// 4. Explicit file, which must exist
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 6. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("preset", cfg.Box.Preset).
		Int("size", cfg.Box.Size).
		Str("color", cfg.Output.Color).
		Int("frames", len(cfg.Frames)).
		Msg("Configuration loaded")
	return cfg, nil
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				presetGlyphsHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path).
			WithDetail("path", path)
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = kyaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// envKey maps NESTBOX_BOX_PRESET to box.preset. Only the first underscore
// separates the section, so NESTBOX_BOX_SIZE and NESTBOX_OUTPUT_WIDTH work
// while frame glyphs are left to files.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if strings.HasPrefix(key, "frames_") {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

// presetGlyphsHookFunc lets a frame be declared as a preset name,
// `alert = "thick"`, instead of a glyph table
func presetGlyphsHookFunc() mapstructure.DecodeHookFunc {
	glyphsType := reflect.TypeOf(box.Glyphs{})
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != glyphsType {
			return data, nil
		}
		name, _ := data.(string)
		p, err := box.ParsePreset(name)
		if err != nil {
			return nil, err
		}
		return p.Glyphs(), nil
	}
}
