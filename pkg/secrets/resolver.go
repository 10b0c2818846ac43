// Package secrets resolve referências a valores sensíveis em strings de
// configuração.
//
// Formatos suportados:
//
//	${env.ONET_API_KEY}           variável de ambiente
//	${ssm./onet/api_key}          AWS SSM Parameter Store (com decrypt)
//	${secret.onet/prod}           AWS Secrets Manager (SecretString)
//	${secret.onet/prod#api_key}   campo de um segredo JSON
//
// Strings sem "${" são devolvidas sem alteração.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/onet-interest-profiler/pkg/awsconf"
)

// Regex para capturar padrões ${tipo.chave}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver resolve referências ${...}. Os clientes AWS são criados sob
// demanda, apenas quando uma referência ssm/secret aparece.
type Resolver struct {
	region  string
	lookup  func(string) (string, bool)
	ssm     SSMClient
	secrets SecretsClient
}

// NewResolver cria um resolvedor que usa o ambiente do processo e a
// configuração padrão da AWS.
func NewResolver(region string) *Resolver {
	return &Resolver{region: region, lookup: os.LookupEnv}
}

// NewResolverWithClients injeta os clientes e a função de lookup.
func NewResolverWithClients(ssmClient SSMClient, secretsClient SecretsClient, lookup func(string) (string, bool)) *Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Resolver{lookup: lookup, ssm: ssmClient, secrets: secretsClient}
}

// Resolve substitui todas as referências encontradas em input.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if firstErr != nil {
			return match
		}
		groups := pattern.FindStringSubmatch(match)
		val, err := r.fetchValue(ctx, groups[1], groups[2])
		if err != nil {
			firstErr = err
			return match
		}
		return val
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// fetchValue centraliza a busca de dados
func (r *Resolver) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		val, _ := r.lookup(key)
		return val, nil

	case "ssm":
		client, err := r.ssmClient(ctx)
		if err != nil {
			return "", err
		}
		return getParameter(ctx, client, key)

	case "secret":
		client, err := r.secretsClient(ctx)
		if err != nil {
			return "", err
		}
		id, field, _ := strings.Cut(key, "#")
		return getSecret(ctx, client, id, field)
	}

	return "", fmt.Errorf("secrets: tipo de referência desconhecido: %s", sourceType)
}

func (r *Resolver) ssmClient(ctx context.Context) (SSMClient, error) {
	if r.ssm == nil {
		cfg, err := awsconf.Get(ctx, r.region)
		if err != nil {
			return nil, fmt.Errorf("secrets: falha ao carregar config AWS: %w", err)
		}
		r.ssm = ssm.NewFromConfig(cfg)
	}
	return r.ssm, nil
}

func (r *Resolver) secretsClient(ctx context.Context) (SecretsClient, error) {
	if r.secrets == nil {
		cfg, err := awsconf.Get(ctx, r.region)
		if err != nil {
			return nil, fmt.Errorf("secrets: falha ao carregar config AWS: %w", err)
		}
		r.secrets = secretsmanager.NewFromConfig(cfg)
	}
	return r.secrets, nil
}

func getParameter(ctx context.Context, client SSMClient, path string) (string, error) {
	decrypt := true
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &path,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter (%s): %w", path, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM %s sem valor", path)
	}
	return *out.Parameter.Value, nil
}

func getSecret(ctx context.Context, client SecretsClient, secretID, field string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretID,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager (%s): %w", secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	val := *out.SecretString
	if field == "" {
		return val, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é JSON: %w", secretID, err)
	}
	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo %q ausente no segredo %s", field, secretID)
	}
	return fmt.Sprintf("%v", v), nil
}
