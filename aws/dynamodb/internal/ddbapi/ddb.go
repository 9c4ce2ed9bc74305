// Package ddbapi defines the subset of the DynamoDB API used by the table client.
package ddbapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// API is implemented by *dynamodb.Client and by test doubles.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(
		ctx context.Context,
		params *dynamodb.UpdateItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.UpdateItemOutput, error)
}

var _ API = (*dynamodb.Client)(nil)
