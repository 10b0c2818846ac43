package envloader

import (
	"errors"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LookupFunc tem a assinatura de os.LookupEnv. Permite carregar configuração
// sem alterar o ambiente do processo (útil em testes).
type LookupFunc func(key string) (string, bool)

type mode int

const (
	// modeFull aplica a variável de ambiente e, na ausência dela, o envDefault.
	modeFull mode = iota
	// modeDefaults aplica apenas os envDefault.
	modeDefaults
	// modeOverride aplica apenas variáveis definidas, sem defaults.
	modeOverride
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env" e "envDefault"
func Load(config interface{}) error {
	return LoadWithLookup(config, os.LookupEnv)
}

// LoadWithLookup é igual ao Load, mas consulta as variáveis pela função informada.
// lookup nil equivale a os.LookupEnv.
func LoadWithLookup(config interface{}, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return run(config, modeFull, lookup)
}

// ApplyDefaults preenche apenas os campos com tag envDefault, ignorando o ambiente.
//
// Usado como primeira camada quando a configuração também vem de um arquivo:
// defaults -> arquivo -> Override.
func ApplyDefaults(config interface{}) error {
	return run(config, modeDefaults, nil)
}

// Override sobrescreve apenas os campos cuja variável de ambiente está definida
// e não vazia. Campos sem variável mantêm o valor atual.
func Override(config interface{}, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return run(config, modeOverride, lookup)
}

// LoadDotEnv carrega arquivos .env para o ambiente do processo usando godotenv.
// Arquivos inexistentes são ignorados; variáveis já definidas não são
// sobrescritas.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &DotEnvError{Path: p, Err: err}
		}
	}
	return nil
}

func run(config interface{}, m mode, lookup LookupFunc) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: reflect.TypeOf(config)}
	}

	return loadStruct(val.Elem(), m, lookup)
}

// loadStruct processa recursivamente uma struct
func loadStruct(val reflect.Value, m mode, lookup LookupFunc) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		// Structs aninhadas (exceto tipos tratados como escalares)
		if field.Kind() == reflect.Struct {
			if err := loadStruct(field, m, lookup); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := loadStruct(field.Elem(), m, lookup); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		var envValue string
		switch m {
		case modeFull:
			envValue, _ = lookup(envTag)
			if envValue == "" {
				envValue = fieldType.Tag.Get("envDefault")
			}
		case modeDefaults:
			envValue = fieldType.Tag.Get("envDefault")
		case modeOverride:
			envValue, _ = lookup(envTag)
		}

		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     envValue,
				Type:      field.Type(),
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue define o valor de um campo baseado no seu tipo
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}
