// Package users stores user records in a DynamoDB table.
package users

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/ddbtypes"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "Users"

// attributes are the item attributes that make up a User.
var attributes = []string{"userId", "firstName", "lastName", "age"}

// ErrInvalidInput is returned before any request is made when an argument is
// rejected locally.
var ErrInvalidInput = stderrors.New("users: invalid input")

// User is one item of the users table. Age is omitted from writes when nil.
type User struct {
	UserID    string `dynamodbav:"userId" json:"userId"`
	FirstName string `dynamodbav:"firstName" json:"firstName"`
	LastName  string `dynamodbav:"lastName" json:"lastName"`
	Age       *int   `dynamodbav:"age,omitempty" json:"age,omitempty"`
}

// Store is the subset of the table client used by Service. It is satisfied
// by *dynamodb.Client from aws/dynamodb.
type Store interface {
	PutItem(ctx context.Context, table string, item any) error
	GetItem(ctx context.Context, table string, key map[string]any, out any, opts ...ddbtypes.GetOption) (bool, error)
	SetAttributes(ctx context.Context, table string, key, values map[string]any) (map[string]any, error)
}

var _ Store = (*dynamodb.Client)(nil)

// Service performs the user operations against one table.
type Service struct {
	store Store
	table string
}

// NewService returns a Service for table. An empty table name selects DefaultTable.
func NewService(store Store, table string) *Service {
	if table == "" {
		table = DefaultTable
	}
	return &Service{store: store, table: table}
}

// Table returns the name of the table the service writes to.
func (s *Service) Table() string {
	return s.table
}

// Put writes a user with exactly the userId, firstName and lastName
// attributes, replacing any existing item with the same id.
func (s *Service) Put(ctx context.Context, userID, firstName, lastName string) error {
	if err := validateID(userID); err != nil {
		return err
	}
	return s.store.PutItem(ctx, s.table, User{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
	})
}

// Get returns the user with the given id, or nil with a nil error when no
// such user exists. The read is strongly consistent, so a put or update made
// just before is always visible.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	if err := validateID(userID); err != nil {
		return nil, err
	}

	var u User
	found, err := s.store.GetItem(ctx, s.table, key(userID), &u,
		dynamodb.WithConsistentRead(),
		dynamodb.WithAttributes(attributes...),
	)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// UpdateAge sets the age attribute of a user and returns the updated
// attributes as reported by the table.
func (s *Service) UpdateAge(ctx context.Context, userID string, age int) (map[string]any, error) {
	if err := validateID(userID); err != nil {
		return nil, err
	}
	if age < 0 {
		return nil, invalid(fmt.Sprintf("age must not be negative, got %d", age))
	}
	return s.store.SetAttributes(ctx, s.table, key(userID), map[string]any{"age": age})
}

func key(userID string) map[string]any {
	return map[string]any{"userId": userID}
}

func validateID(userID string) error {
	if userID == "" {
		return invalid("userId cannot be empty")
	}
	return nil
}

func invalid(msg string) error {
	return errors.Wrap(fmt.Errorf("%w: %s", ErrInvalidInput, msg), errors.CodeInvalidInput, "")
}
