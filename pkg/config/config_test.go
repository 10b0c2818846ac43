package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	values map[string]string
	err    error
}

func (s stubResolver) Resolve(_ context.Context, input string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if v, ok := s.values[input]; ok {
		return v, nil
	}
	return input, nil
}

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func baseOptions(vars map[string]string) Options {
	return Options{
		SkipDotEnv: true,
		Lookup:     lookupFrom(vars),
		Resolver:   stubResolver{},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), baseOptions(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.API.Key)
	assert.Equal(t, "https://api-v2.onetcenter.org", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Start)
	assert.Equal(t, 60, cfg.API.End)
	assert.Equal(t, "data/raw/interest_profiler_questions.json", cfg.Output)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Datadog.Enabled)
	assert.Equal(t, "onet.", cfg.Metrics.Datadog.Namespace)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onet.yaml")
	yamlContent := `
api:
  key: "${secret.onet/prod#api_key}"
  base_url: "http://localhost:9000"
  timeout: 5s
  end: 30
output: "s3://bucket/questions.json"
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	opts := baseOptions(map[string]string{
		ConfigFileEnv:    path,
		"ONET_RANGE_END": "20",
	})
	opts.Resolver = stubResolver{values: map[string]string{"${secret.onet/prod#api_key}": "resolved-key"}}

	cfg, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "resolved-key", cfg.API.Key)
	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Start, "default mantido")
	assert.Equal(t, 20, cfg.API.End, "ambiente tem prioridade sobre o arquivo")
	assert.Equal(t, "s3://bucket/questions.json", cfg.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	opts := baseOptions(nil)
	opts.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(context.Background(), opts)
	var cfgErr *errs.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	opts := baseOptions(nil)
	opts.ConfigFile = path

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML malformado")
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]map[string]string{
		"faixa invertida":      {"ONET_RANGE_START": "10", "ONET_RANGE_END": "5"},
		"início zero":          {"ONET_RANGE_START": "0"},
		"nível de log":         {"LOG_LEVEL": "verbose"},
		"formato de log":       {"LOG_FORMAT": "xml"},
		"datadog sem endereço": {"DD_ENABLED": "true"},
		"url inválida":         {"ONET_API_BASE": "not a url"},
	}

	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), baseOptions(vars))
			var cfgErr *errs.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "esperado ConfigurationError, recebido %v", err)
		})
	}
}

func TestLoad_MalformedVariable(t *testing.T) {
	_, err := Load(context.Background(), baseOptions(map[string]string{"ONET_TIMEOUT": "thirty"}))
	var cfgErr *errs.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "recebido %v", err)
	assert.Equal(t, "ONET_TIMEOUT", cfgErr.Key)
}

func TestLoad_ResolverError(t *testing.T) {
	opts := baseOptions(map[string]string{"ONET_API_KEY": "${ssm./onet/key}"})
	opts.Resolver = stubResolver{err: errors.New("access denied")}

	_, err := Load(context.Background(), opts)
	var cfgErr *errs.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "api.key", cfgErr.Key)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONFIG_TEST_DOTENV_KEY=dotenv-key\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CONFIG_TEST_DOTENV_KEY") })

	cfg, err := Load(context.Background(), Options{
		EnvFiles: []string{envFile},
		Lookup:   lookupFrom(map[string]string{"ONET_API_KEY": "${env.CONFIG_TEST_DOTENV_KEY}"}),
		Resolver: secrets.NewResolverWithClients(nil, nil, os.LookupEnv),
	})
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", os.Getenv("CONFIG_TEST_DOTENV_KEY"))
	assert.Equal(t, "dotenv-key", cfg.API.Key)
}
