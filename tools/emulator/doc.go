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
// Package emulator fornece um servidor HTTP local que imita o endpoint de
// perguntas do O*NET Interest Profiler, para desenvolvimento offline e testes
// de integração sem consumir a cota da API real.
//
// Visão Geral:
// O emulador carrega um snapshot gravado pelo pacote store (de qualquer
// localização aceita por store.Open) e o serve em
// GET /mnm/interestprofiler/questions?start=&end=, no mesmo formato da API
// (chaves question, answer_option, total).
//
// Comportamento:
//   - Autenticação: com EMULATOR_API_KEY definida, requisições sem o header
//     X-API-Key correspondente recebem 401.
//   - Faixa: start/end não inteiros ou start > end recebem 422.
//   - Áreas: por padrão devolvidas em minúsculas, como a API real; o fetcher
//     as normaliza.
//   - Latência: EMULATOR_LATENCY (ex: "250ms") atrasa cada resposta.
//   - GET /health responde {"status":"ok"}.
//
// Exemplo de uso:
//
//	EMULATOR_API_KEY=dev go run ./cmd/emulator
//	ONET_API_BASE=http://localhost:8089 ONET_API_KEY=dev go run ./cmd/onetfetch
package emulator
