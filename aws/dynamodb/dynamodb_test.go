package dynamodb

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/testutil"
)

type record struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Score *int   `dynamodbav:"score,omitempty"`
}

func TestClient_PutItem(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		item      any
		setupMock func(*testutil.MockDynamoDBClient)
		wantItem  map[string]types.AttributeValue
		wantErr   func(error) bool
	}{
		{
			name:  "struct item omits empty optional fields",
			table: "Records",
			item:  record{ID: "1", Name: "alpha"},
			wantItem: map[string]types.AttributeValue{
				"id":   &types.AttributeValueMemberS{Value: "1"},
				"name": &types.AttributeValueMemberS{Value: "alpha"},
			},
		},
		{
			name:    "empty table name",
			table:   "",
			item:    record{ID: "1"},
			wantErr: errors.IsInvalidInput,
		},
		{
			name:  "missing table",
			table: "Records",
			item:  record{ID: "1"},
			setupMock: func(m *testutil.MockDynamoDBClient) {
				m.PutItemFunc = func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
					return nil, &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
				}
			},
			wantErr: errors.IsTableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockDynamoDBClient{}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			err := NewWithClient(mock).PutItem(context.Background(), tt.table, tt.item)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				return
			}

			require.NoError(t, err)
			require.Len(t, mock.PutItemCalls, 1)
			assert.Equal(t, tt.table, aws.ToString(mock.PutItemCalls[0].TableName))
			assert.Equal(t, tt.wantItem, mock.PutItemCalls[0].Item)
		})
	}
}

func TestClient_GetItem(t *testing.T) {
	key := map[string]any{"id": "1"}

	t.Run("found", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				assert.Equal(t, &types.AttributeValueMemberS{Value: "1"}, params.Key["id"])
				assert.True(t, aws.ToBool(params.ConsistentRead))
				return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
					"id":    &types.AttributeValueMemberS{Value: "1"},
					"name":  &types.AttributeValueMemberS{Value: "alpha"},
					"score": &types.AttributeValueMemberN{Value: "7"},
				}}, nil
			},
		}

		var out record
		found, err := NewWithClient(mock).GetItem(context.Background(), "Records", key, &out, WithConsistentRead())
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "alpha", out.Name)
		require.NotNil(t, out.Score)
		assert.Equal(t, 7, *out.Score)
	})

	t.Run("missing item is not an error", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{}

		out := record{Name: "untouched"}
		found, err := NewWithClient(mock).GetItem(context.Background(), "Records", key, &out)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "untouched", out.Name)
	})

	t.Run("projection", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				require.NotNil(t, params.ProjectionExpression)
				assert.Len(t, params.ExpressionAttributeNames, 1)
				for _, name := range params.ExpressionAttributeNames {
					assert.Equal(t, "name", name)
				}
				return &dynamodb.GetItemOutput{}, nil
			},
		}

		var out record
		_, err := NewWithClient(mock).GetItem(context.Background(), "Records", key, &out, WithAttributes("name"))
		require.NoError(t, err)
	})

	t.Run("empty key", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{}

		var out record
		_, err := NewWithClient(mock).GetItem(context.Background(), "Records", nil, &out)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Empty(t, mock.GetItemCalls)
	})

	t.Run("access denied", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				return nil, testutil.APIError("AccessDeniedException", "not authorized")
			},
		}

		var out record
		_, err := NewWithClient(mock).GetItem(context.Background(), "Records", key, &out)
		require.Error(t, err)
		assert.True(t, errors.IsAccessDenied(err))
		assert.Contains(t, err.Error(), "dynamodb.getItem table Records")
	})
}

func TestClient_SetAttributes(t *testing.T) {
	t.Run("sets only the named attributes", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{
			UpdateItemFunc: func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
					"score": &types.AttributeValueMemberN{Value: "9"},
				}}, nil
			},
		}

		updated, err := NewWithClient(mock).SetAttributes(context.Background(), "Records",
			map[string]any{"id": "1"},
			map[string]any{"score": 9},
		)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"score": float64(9)}, updated)

		require.Len(t, mock.UpdateItemCalls, 1)
		input := mock.UpdateItemCalls[0]
		assert.Equal(t, types.ReturnValueUpdatedNew, input.ReturnValues)
		assert.Equal(t, "SET #0 = :0", strings.TrimSpace(aws.ToString(input.UpdateExpression)))
		assert.Equal(t, map[string]string{"#0": "score"}, input.ExpressionAttributeNames)
		assert.Equal(t, map[string]types.AttributeValue{":0": &types.AttributeValueMemberN{Value: "9"}}, input.ExpressionAttributeValues)
		assert.Equal(t, map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "1"}}, input.Key)
	})

	t.Run("no values", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{}
		_, err := NewWithClient(mock).SetAttributes(context.Background(), "Records", map[string]any{"id": "1"}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Empty(t, mock.UpdateItemCalls)
	})

	t.Run("validation exception", func(t *testing.T) {
		mock := &testutil.MockDynamoDBClient{
			UpdateItemFunc: func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				return nil, testutil.APIError("ValidationException", "The provided key element does not match the schema")
			},
		}
		_, err := NewWithClient(mock).SetAttributes(context.Background(), "Records",
			map[string]any{"wrong": "1"},
			map[string]any{"score": 1},
		)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.False(t, errors.IsInvalidInput(err))
	})
}

func TestUpdateExpression_StableOrder(t *testing.T) {
	values := map[string]any{"b": 2, "a": 1, "c": 3}

	first, err := updateExpression(values)
	require.NoError(t, err)
	for range 10 {
		next, err := updateExpression(values)
		require.NoError(t, err)
		assert.Equal(t, aws.ToString(first.Update()), aws.ToString(next.Update()))
		assert.Equal(t, first.Names(), next.Names())
	}
}
