package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/awsconf"
)

const (
	defaultDynamoPK  = "id"
	defaultDynamoCol = "document"
)

// DynamoAPI é o subconjunto do cliente DynamoDB usado pelo backend.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoBackend guarda o documento como string em uma coluna de um item.
//
//	dynamodb://tabela/chave?pk=id&col=document
type DynamoBackend struct {
	client DynamoAPI
	table  string
	pkName string
	pk     string
	col    string
}

// dynamoItem é o formato gravado via attributevalue.
type dynamoItem struct {
	DatasetID string `dynamodbav:"dataset_id"`
	Questions int    `dynamodbav:"questions"`
}

func NewDynamoBackend(client DynamoAPI, table, pkName, pk, col string) *DynamoBackend {
	if pkName == "" {
		pkName = defaultDynamoPK
	}
	if col == "" {
		col = defaultDynamoCol
	}
	return &DynamoBackend{client: client, table: table, pkName: pkName, pk: pk, col: col}
}

func OpenDynamo(ctx context.Context, location, region string) (*DynamoBackend, error) {
	u, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	pk := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || pk == "" {
		return nil, &errs.ConfigurationError{Key: "output", Reason: fmt.Sprintf("dynamodb location must be dynamodb://table/id, got %q", location)}
	}

	cfg, err := awsconf.Get(ctx, region)
	if err != nil {
		return nil, &errs.ConfigurationError{Key: "aws", Reason: err.Error()}
	}
	q := u.Query()
	return NewDynamoBackend(dynamodb.NewFromConfig(cfg), u.Host, q.Get("pk"), pk, q.Get("col")), nil
}

func (b *DynamoBackend) Location() string {
	return fmt.Sprintf("dynamodb://%s/%s?pk=%s&col=%s", b.table, b.pk, b.pkName, b.col)
}

func (b *DynamoBackend) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		b.pkName: &types.AttributeValueMemberS{Value: b.pk},
	}
}

// Put grava o documento e alguns atributos de consulta rápida ao lado dele.
func (b *DynamoBackend) Put(ctx context.Context, data []byte) error {
	qs, err := Unmarshal(data, b.Location())
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(dynamoItem{DatasetID: qs.DatasetID(), Questions: qs.Len()})
	if err != nil {
		return &errs.IOError{Op: "dynamodb marshal", Path: b.Location(), Err: err}
	}
	for k, v := range b.key() {
		item[k] = v
	}
	item[b.col] = &types.AttributeValueMemberS{Value: string(data)}

	_, err = b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.table),
		Item:      item,
	})
	if err != nil {
		return &errs.IOError{Op: "dynamodb put", Path: b.Location(), Err: err}
	}
	return nil
}

func (b *DynamoBackend) Get(ctx context.Context) ([]byte, error) {
	out, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(b.table),
		Key:       b.key(),
	})
	if err != nil {
		return nil, &errs.IOError{Op: "dynamodb get", Path: b.Location(), Err: err}
	}
	if len(out.Item) == 0 {
		return nil, &errs.NotFoundError{Path: b.Location()}
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, &errs.IOError{Op: "dynamodb unmarshal", Path: b.Location(), Err: err}
	}
	content, ok := itemMap[b.col].(string)
	if !ok {
		return nil, &errs.IOError{Op: "dynamodb get", Path: b.Location(), Err: fmt.Errorf("coluna '%s' inválida ou vazia", b.col)}
	}
	return []byte(content), nil
}
