package testutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// MockDynamoDBClient mocks the DynamoDB calls made by the table client.
// Unset fields return an empty output.
type MockDynamoDBClient struct {
	PutItemFunc    func(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItemFunc    func(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItemFunc func(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)

	// PutItemCalls, GetItemCalls and UpdateItemCalls record every input received
	PutItemCalls    []*dynamodb.PutItemInput
	GetItemCalls    []*dynamodb.GetItemInput
	UpdateItemCalls []*dynamodb.UpdateItemInput
}

// PutItem mocks the DynamoDB PutItem operation.
func (m *MockDynamoDBClient) PutItem(
	ctx context.Context,
	params *dynamodb.PutItemInput,
	optFns ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	m.PutItemCalls = append(m.PutItemCalls, params)
	if m.PutItemFunc != nil {
		return m.PutItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

// GetItem mocks the DynamoDB GetItem operation. The default finds no item.
func (m *MockDynamoDBClient) GetItem(
	ctx context.Context,
	params *dynamodb.GetItemInput,
	optFns ...func(*dynamodb.Options),
) (*dynamodb.GetItemOutput, error) {
	m.GetItemCalls = append(m.GetItemCalls, params)
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

// UpdateItem mocks the DynamoDB UpdateItem operation.
func (m *MockDynamoDBClient) UpdateItem(
	ctx context.Context,
	params *dynamodb.UpdateItemInput,
	optFns ...func(*dynamodb.Options),
) (*dynamodb.UpdateItemOutput, error) {
	m.UpdateItemCalls = append(m.UpdateItemCalls, params)
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}
