package dynamodb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/assetkit/resolver"
)

const (
	// DefaultKeyAttribute is the partition key attribute name.
	DefaultKeyAttribute = "path"
	// DefaultDataAttribute holds the asset bytes.
	DefaultDataAttribute = "data"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Resolver implements resolver.Resolver backed by a DynamoDB table.
type Resolver struct {
	client    Client
	tableName string
	prefix    string
	keyAttr   string
	dataAttr  string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(r *Resolver) { r.prefix = prefix }
}

// WithAttributes overrides the key and data attribute names.
func WithAttributes(key, data string) Option {
	return func(r *Resolver) {
		r.keyAttr = key
		r.dataAttr = data
	}
}

// NewResolver creates a DynamoDB resolver reading from tableName.
func NewResolver(client Client, tableName string, optFns ...Option) *Resolver {
	r := &Resolver{
		client:    client,
		tableName: tableName,
		keyAttr:   DefaultKeyAttribute,
		dataAttr:  DefaultDataAttribute,
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

func (r *Resolver) key(name string) map[string]types.AttributeValue {
	k := name
	if r.prefix != "" {
		k = strings.TrimSuffix(r.prefix, "/") + "/" + name
	}
	return map[string]types.AttributeValue{
		r.keyAttr: &types.AttributeValueMemberS{Value: k},
	}
}

// Exists reports whether an item for name exists.
func (r *Resolver) Exists(ctx context.Context, name string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      r.key(name),
		ProjectionExpression:     aws.String("#k"),
		ExpressionAttributeNames: map[string]string{"#k": r.keyAttr},
	})
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	return len(out.Item) > 0, nil
}

// Resolve returns the data attribute of the item for name.
func (r *Resolver) Resolve(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(name),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, resolver.ErrNotFound
	}

	var data []byte
	switch v := out.Item[r.dataAttr].(type) {
	case *types.AttributeValueMemberB:
		data = v.Value
	case *types.AttributeValueMemberS:
		data = []byte(v.Value)
	case nil:
		return nil, fmt.Errorf("item %q has no %q attribute", name, r.dataAttr)
	default:
		return nil, fmt.Errorf("item %q: unsupported %q attribute type %T", name, r.dataAttr, v)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
