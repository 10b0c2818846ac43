// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package envloader carrega variáveis de ambiente diretamente para campos de
// uma struct Go, usando as tags `env` e `envDefault`.
//
// Visão Geral:
// O pacote usa reflection para mapear variáveis de ambiente para campos
// tipados (string, int, uint, bool, float e time.Duration), incluindo structs
// aninhadas e ponteiros para structs.
//
// A carga pode ser feita de uma vez (Load) ou em camadas, quando a
// configuração também vem de um arquivo:
//
//	envloader.ApplyDefaults(&cfg)          // 1. envDefault
//	yaml.Unmarshal(data, &cfg)             // 2. arquivo
//	envloader.Override(&cfg, os.LookupEnv) // 3. ambiente
//
// A função de lookup é injetável, o que permite testar sem alterar o
// ambiente do processo. LoadDotEnv carrega arquivos .env via godotenv antes
// da leitura.
//
// Exemplo Básico:
//
//	type Config struct {
//		APIKey  string        `env:"ONET_API_KEY"`
//		Timeout time.Duration `env:"ONET_TIMEOUT" envDefault:"30s"`
//	}
//
//	_ = envloader.LoadDotEnv(".env")
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package envloader
