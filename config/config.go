package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"pushkit/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath           = "."
	defaultWorkerPathA    = "/push-worker-a.js"
	defaultWorkerPathB    = "/push-worker-b.js"
	defaultWorkerScope    = "/"
	defaultBackendTimeout = 30 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// App identifies the application against the backend.
	App AppConfig `json:"app" yaml:"app"`

	// Worker configures the A/B worker slot pair and registration scope.
	Worker WorkerConfig `json:"worker" yaml:"worker"`

	// Push configures the subscription mechanisms.
	Push PushConfig `json:"push" yaml:"push"`

	// Backend configures the registration API endpoint.
	Backend BackendConfig `json:"backend" yaml:"backend"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// AppConfig identifies the application.
type AppConfig struct {
	AppID string `json:"appId" yaml:"appId" validate:"required"`
}

// WorkerConfig holds the two interchangeable worker script locations and the
// registration scope. The two paths must differ: updates re-register the
// other file name to force reinstallation, since browsers cache-skip
// re-registration of an identical URL.
type WorkerConfig struct {
	PathA string `json:"pathA" yaml:"pathA"`
	PathB string `json:"pathB" yaml:"pathB"`
	Scope string `json:"scope" yaml:"scope"`
}

// Paths returns the configured slot pair as a value object.
func (w WorkerConfig) Paths() entity.WorkerPaths {
	return entity.WorkerPaths{PathA: w.PathA, PathB: w.PathB, Scope: w.Scope}
}

// PushConfig holds per-mechanism subscription settings. Both fields are
// optional; an empty VAPID key falls back to legacy sender-ID push, and an
// empty Safari web ID makes the Safari path a setup error.
type PushConfig struct {
	VAPIDPublicKey string `json:"vapidPublicKey" yaml:"vapidPublicKey"`
	SafariWebID    string `json:"safariWebId" yaml:"safariWebId"`
}

// BackendConfig points at the registration API.
type BackendConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LoadWithEnv loads .yaml files through koanf with environment overrides.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: PUSH_VAPIDPUBLICKEY -> push.vapidPublicKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Worker.PathA) == "" {
		cfg.Worker.PathA = defaultWorkerPathA
	}
	if strings.TrimSpace(cfg.Worker.PathB) == "" {
		cfg.Worker.PathB = defaultWorkerPathB
	}
	if strings.TrimSpace(cfg.Worker.Scope) == "" {
		cfg.Worker.Scope = defaultWorkerScope
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
