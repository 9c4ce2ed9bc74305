// Package dynamodb provides a table client built on AWS SDK v2 for writing,
// reading and updating single items.
//
// Items are marshalled with the SDK's attributevalue package and update
// expressions are built with its expression package, so callers work with
// tagged structs and plain maps rather than AttributeValue trees. Failures
// are reported as *errors.Error values wrapping sentinels such as
// ErrTableNotFound.
//
// Example usage:
//
//	client, err := dynamodb.New(ctx)
//	if err != nil {
//	    return err
//	}
//
//	if err := client.PutItem(ctx, "Users", user); err != nil {
//	    return err
//	}
package dynamodb
