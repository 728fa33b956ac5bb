package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Sources names the files read by Load. Empty names are skipped.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// DefaultSources is the convention: config.yaml and .env in the working directory.
var DefaultSources = Sources{ConfigFile: "config.yaml", EnvFile: ".env"}

// Load fills cfg from, in increasing priority: defaults, the YAML config
// file, the .env file and <APPNAME>_* environment variables, then validates it.
// cfg must be a non-nil pointer.
func Load[T Validator](appName string, cfg T, defaults map[string]any, src Sources) error {
	// Create a new Koanf instance
	k := koanf.New(".")

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(appName))

	// 1. Defaults, the lowest priority
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return fmt.Errorf("error loading default config: %w", err)
	}

	// 2. Load configuration from yaml file
	if src.ConfigFile != "" {
		if err := k.Load(file.Provider(src.ConfigFile), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("WARN: error loading YAML config file '%s': %v", src.ConfigFile, err)
			}
		}
	}

	// 3. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if src.EnvFile != "" {
		if envFileMap, err := godotenv.Read(src.EnvFile); err == nil {
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
					continue
				}
				envMap[envTransformer(key)] = value
			}
			// Load the envMap into Koanf
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 5. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}
