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
// Package errs define a taxonomia de erros compartilhada pelos pacotes
// schema, fetcher e store.
//
// Nenhum erro é recuperado internamente: cada falha sobe até o chamador com
// contexto suficiente (valor ofensivo, status HTTP, caminho) para diagnóstico.
// Use errors.As para identificar o tipo:
//
//	var upstream *errs.UpstreamError
//	if errors.As(err, &upstream) {
//		log.Printf("status %d", upstream.StatusCode)
//	}
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError é retornado quando falta uma configuração obrigatória,
// como a credencial da API.
type ConfigurationError struct {
	// Key é o nome da configuração ausente (ex: "ONET_API_KEY").
	Key string
	// Reason descreve o problema.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration: %s is required", e.Key)
	}
	return fmt.Sprintf("configuration: %s: %s", e.Key, e.Reason)
}

// NetworkError representa uma falha de transporte (DNS, timeout, reset).
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap retorna o erro original do transporte.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError é retornado quando a API responde com status fora da faixa 2xx.
type UpstreamError struct {
	// StatusCode é o status HTTP recebido (ex: 401, 422).
	StatusCode int
	URL        string
	// Body guarda um trecho da resposta, útil para diagnóstico.
	Body string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream: %s returned status %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// ParseError indica conteúdo JSON malformado ou sem as chaves esperadas.
type ParseError struct {
	// Source identifica a origem do documento (caminho, URL).
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationKind classifica a violação de um invariante do schema.
type ValidationKind string

const (
	// KindOutOfRange indica valor numérico fora da escala permitida.
	KindOutOfRange ValidationKind = "out_of_range"
	// KindInvalidCategory indica string fora do vocabulário fixo.
	KindInvalidCategory ValidationKind = "invalid_category"
	// KindInvalidEncoding indica texto que não é UTF-8 válido.
	KindInvalidEncoding ValidationKind = "invalid_encoding"
)

// ValidationError é retornado pelos construtores do schema quando um campo
// viola seu invariante.
type ValidationError struct {
	Kind ValidationKind
	// Field é o nome do campo validado (ex: "AnswerOption.value").
	Field string
	// Value é o valor ofensivo.
	Value interface{}
	// Allowed lista os valores aceitos, quando o domínio é enumerável.
	Allowed []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindOutOfRange:
		return fmt.Sprintf("validation: %s must be between %s, got %v",
			e.Field, strings.Join(e.Allowed, " and "), e.Value)
	case KindInvalidCategory:
		return fmt.Sprintf("validation: %s must be one of [%s], got %q",
			e.Field, strings.Join(e.Allowed, ", "), e.Value)
	case KindInvalidEncoding:
		return fmt.Sprintf("validation: %s must be valid UTF-8, got %q", e.Field, e.Value)
	default:
		return fmt.Sprintf("validation: invalid %s: %v", e.Field, e.Value)
	}
}

// NotFoundError é retornado quando o documento persistido não existe.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IOError encapsula falhas de escrita, leitura ou criação de diretórios.
type IOError struct {
	// Op é a operação que falhou (ex: "mkdir", "write", "read").
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Kind retorna um rótulo curto para o tipo do erro, usado em tags de métricas
// e campos de log. Erros encapsulados com %w também são reconhecidos.
func Kind(err error) string {
	var (
		configErr   *ConfigurationError
		networkErr  *NetworkError
		upstreamErr *UpstreamError
		parseErr    *ParseError
		validErr    *ValidationError
		notFoundErr *NotFoundError
		ioErr       *IOError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &configErr):
		return "configuration"
	case errors.As(err, &networkErr):
		return "network"
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &validErr):
		return "validation"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &ioErr):
		return "io"
	default:
		return "unknown"
	}
}
