package config

import "time"

// Config representa a configuração da ferramenta. Pode vir de um arquivo
// YAML, de variáveis de ambiente ou de ambos (o ambiente tem prioridade).
type Config struct {
	API API `yaml:"api"`
	// Output é o destino do snapshot: caminho local ou URI (s3://, dynamodb://,
	// redis://, postgres://).
	Output    string      `yaml:"output" env:"ONET_OUTPUT" envDefault:"data/raw/interest_profiler_questions.json" validate:"required"`
	AWSRegion string      `yaml:"aws_region" env:"AWS_REGION"`
	Logging   LoggingConf `yaml:"logging"`
	Metrics   MetricsConf `yaml:"metrics"`
}

// API agrupa os parâmetros da chamada ao O*NET Web Services.
type API struct {
	// Key aceita referências ${env.X}, ${ssm.X} e ${secret.X}.
	Key     string        `yaml:"key" env:"ONET_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"ONET_API_BASE" envDefault:"https://api-v2.onetcenter.org" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env:"ONET_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	Start   int           `yaml:"start" env:"ONET_RANGE_START" envDefault:"1" validate:"gte=1"`
	End     int           `yaml:"end" env:"ONET_RANGE_END" envDefault:"60" validate:"gtefield=Start"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"onet."`
}
