package emulator

import (
	"time"

	"github.com/raywall/onet-interest-profiler/envloader"
	"github.com/raywall/onet-interest-profiler/store"
)

// Config é lida do ambiente via envloader.
type Config struct {
	Port int `env:"EMULATOR_PORT" envDefault:"8089"`
	// APIKey vazia desliga a verificação do header X-API-Key.
	APIKey string `env:"EMULATOR_API_KEY"`
	// DataSource é qualquer localização aceita por store.Open.
	DataSource string        `env:"EMULATOR_DATA" envDefault:"data/raw/interest_profiler_questions.json"`
	Latency    time.Duration `env:"EMULATOR_LATENCY" envDefault:"0s"`
	// LowercaseAreas imita a API real, que devolve áreas em minúsculas.
	LowercaseAreas bool `env:"EMULATOR_LOWERCASE_AREAS" envDefault:"true"`
}

// LoadConfig lê a configuração do emulador a partir de lookup
// (nil usa o ambiente do processo).
func LoadConfig(lookup envloader.LookupFunc) (Config, error) {
	var cfg Config
	if err := envloader.LoadWithLookup(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if cfg.DataSource == "" {
		cfg.DataSource = store.DefaultPath
	}
	return cfg, nil
}
