package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/raywall/onet-interest-profiler/envloader"
	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/secrets"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileEnv aponta para um arquivo YAML opcional.
	ConfigFileEnv = "ONET_CONFIG_FILE"
	// DefaultConfigFile é usado quando existe no diretório corrente.
	DefaultConfigFile = "onet.yaml"
)

// SecretResolver resolve referências em valores sensíveis.
type SecretResolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// Options controla a carga da configuração. O valor zero usa o ambiente do
// processo, o arquivo .env do diretório corrente e o resolvedor AWS.
type Options struct {
	// EnvFiles são carregados via godotenv antes da leitura do ambiente.
	EnvFiles   []string
	SkipDotEnv bool
	// ConfigFile sobrescreve ONET_CONFIG_FILE / onet.yaml.
	ConfigFile string
	Lookup     envloader.LookupFunc
	Resolver   SecretResolver
}

// Load monta a configuração em camadas:
// envDefault -> arquivo YAML -> variáveis de ambiente -> segredos -> validação.
func Load(ctx context.Context, opts Options) (*Config, error) {
	if !opts.SkipDotEnv {
		if err := envloader.LoadDotEnv(opts.EnvFiles...); err != nil {
			return nil, &errs.ConfigurationError{Key: ".env", Reason: err.Error()}
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := &Config{}
	if err := envloader.ApplyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("falha ao aplicar defaults: %w", err)
	}

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		if p, ok := lookup(ConfigFileEnv); ok && p != "" {
			path, explicit = p, true
		} else {
			path = DefaultConfigFile
		}
	}
	if err := loadFile(path, explicit, cfg); err != nil {
		return nil, err
	}

	if err := envloader.Override(cfg, lookup); err != nil {
		key := "env"
		var fieldErr *envloader.FieldError
		if errors.As(err, &fieldErr) {
			key = fieldErr.EnvVar
		}
		return nil, &errs.ConfigurationError{Key: key, Reason: err.Error()}
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = secrets.NewResolver(cfg.AWSRegion)
	}
	key, err := resolver.Resolve(ctx, cfg.API.Key)
	if err != nil {
		return nil, &errs.ConfigurationError{Key: "api.key", Reason: err.Error()}
	}
	cfg.API.Key = key

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodifica o YAML sobre cfg. Um arquivo ausente só é erro quando
// foi pedido explicitamente.
func loadFile(path string, explicit bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return &errs.ConfigurationError{Key: path, Reason: err.Error()}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &errs.ConfigurationError{Key: path, Reason: fmt.Sprintf("YAML malformado: %v", err)}
	}
	return nil
}
