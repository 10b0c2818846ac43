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
package envloader

import (
	"fmt"
	"reflect"
	"strings"
)

// InvalidConfigError indica que o destino não é um ponteiro para struct.
type InvalidConfigError struct {
	Value reflect.Type
}

func (e *InvalidConfigError) Error() string {
	got := "nil"
	switch {
	case e.Value == nil:
	case e.Value.Kind() == reflect.Ptr:
		got = "pointer to " + e.Value.Elem().Kind().String()
	default:
		got = e.Value.Kind().String()
	}
	return "envloader: config must be a pointer to struct, got " + got
}

// FieldError descreve uma variável cujo valor não pôde ser convertido para
// o tipo do campo (ex: ONET_TIMEOUT=thirty num time.Duration).
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	Type      reflect.Type
	Err       error
}

func (e *FieldError) Error() string {
	value := redactValue(e.EnvVar, e.Value)
	cause := ""
	if e.Err != nil {
		cause = e.Err.Error()
		// strconv e time.ParseDuration repetem a entrada na mensagem.
		if value != e.Value && e.Value != "" {
			cause = strings.ReplaceAll(cause, e.Value, value)
		}
	}
	return fmt.Sprintf("envloader: error setting field %s (%s) from %s=%q: %s",
		e.FieldName, e.Type, e.EnvVar, value, cause)
}

func (e *FieldError) Unwrap() error { return e.Err }

// UnsupportedTypeError é retornado para campos sem conversão (slices, maps...).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("envloader: unsupported type %s", e.Type)
}

// DotEnvError indica um .env existente que o godotenv não conseguiu ler.
type DotEnvError struct {
	Path string
	Err  error
}

func (e *DotEnvError) Error() string {
	return fmt.Sprintf("envloader: failed to load %s: %v", e.Path, e.Err)
}

func (e *DotEnvError) Unwrap() error { return e.Err }

// redactValue evita que credenciais apareçam em mensagens de erro.
func redactValue(envVar, value string) string {
	name := strings.ToUpper(envVar)
	for _, marker := range []string{"KEY", "SECRET", "TOKEN", "PASSWORD"} {
		if strings.Contains(name, marker) {
			return "****"
		}
	}
	return value
}
