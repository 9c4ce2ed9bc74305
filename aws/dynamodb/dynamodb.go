package dynamodb

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/ddbtypes"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/errors"
)

// PutItem writes item to table, replacing any item with the same key.
// The item is marshalled with attributevalue, so struct fields are named by
// their dynamodbav tags.
//
// Errors:
//   - ErrInvalidInput: If the table name is empty or the item cannot be marshalled
//   - ErrTableNotFound: If the table doesn't exist
//   - ErrThrottled: If the request was throttled after the SDK's retries
func (c *Client) PutItem(ctx context.Context, table string, item any) error {
	const op = "putItem"

	if table == "" {
		return errors.NewError(op, table, fmt.Errorf("%w: table name cannot be empty", errors.ErrInvalidInput))
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.NewError(op, table, fmt.Errorf("%w: marshal item: %w", errors.ErrInvalidInput, err))
	}

	c.logger.DebugContext(ctx, "putting item", "table", table, "attributes", len(av))

	if _, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return errors.NewError(op, table, errors.FromAWS(err))
	}
	return nil
}

// GetItem reads the item with the given key into out. It reports false with
// a nil error when no such item exists, leaving out untouched.
//
// Example:
//
//	var user User
//	found, err := client.GetItem(ctx, "Users", map[string]any{"userId": "42"}, &user)
func (c *Client) GetItem(
	ctx context.Context,
	table string,
	key map[string]any,
	out any,
	opts ...ddbtypes.GetOption,
) (bool, error) {
	const op = "getItem"

	keyAV, err := marshalKey(table, key)
	if err != nil {
		return false, errors.NewError(op, table, err)
	}

	config := &ddbtypes.GetOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       keyAV,
	}
	if config.ConsistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	if len(config.Attributes) > 0 {
		var proj expression.ProjectionBuilder
		for _, name := range config.Attributes {
			proj = proj.AddNames(expression.Name(name))
		}
		expr, err := expression.NewBuilder().WithProjection(proj).Build()
		if err != nil {
			return false, errors.NewError(op, table, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err))
		}
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
	}

	output, err := c.api.GetItem(ctx, input)
	if err != nil {
		return false, errors.NewError(op, table, errors.FromAWS(err))
	}
	if len(output.Item) == 0 {
		c.logger.DebugContext(ctx, "item not found", "table", table)
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return false, errors.NewError(op, table, fmt.Errorf("unmarshal item: %w", err))
	}
	return true, nil
}

// SetAttributes sets the given attributes on the item with the given key in
// a single UpdateItem call and returns the new values of the updated
// attributes. Attributes not named in values are left unchanged.
//
// Example:
//
//	updated, err := client.SetAttributes(ctx, "Users",
//	    map[string]any{"userId": "42"},
//	    map[string]any{"age": 30},
//	)
func (c *Client) SetAttributes(
	ctx context.Context,
	table string,
	key map[string]any,
	values map[string]any,
) (map[string]any, error) {
	const op = "updateItem"

	keyAV, err := marshalKey(table, key)
	if err != nil {
		return nil, errors.NewError(op, table, err)
	}
	if len(values) == 0 {
		return nil, errors.NewError(op, table, fmt.Errorf("%w: no attributes to set", errors.ErrInvalidInput))
	}

	expr, err := updateExpression(values)
	if err != nil {
		return nil, errors.NewError(op, table, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err))
	}

	c.logger.DebugContext(ctx, "updating item", "table", table, "update", aws.ToString(expr.Update()))

	output, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       keyAV,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, errors.NewError(op, table, errors.FromAWS(err))
	}

	updated := map[string]any{}
	if err := attributevalue.UnmarshalMap(output.Attributes, &updated); err != nil {
		return nil, errors.NewError(op, table, fmt.Errorf("unmarshal attributes: %w", err))
	}
	return updated, nil
}

func marshalKey(table string, key map[string]any) (map[string]types.AttributeValue, error) {
	if table == "" {
		return nil, fmt.Errorf("%w: table name cannot be empty", errors.ErrInvalidInput)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key cannot be empty", errors.ErrInvalidInput)
	}
	av, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal key: %w", errors.ErrInvalidInput, err)
	}
	return av, nil
}

// updateExpression builds a SET expression over values. Names are sorted so
// the expression is stable across calls.
func updateExpression(values map[string]any) (expression.Expression, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	var update expression.UpdateBuilder
	for _, name := range names {
		update = update.Set(expression.Name(name), expression.Value(values[name]))
	}
	return expression.NewBuilder().WithUpdate(update).Build()
}
