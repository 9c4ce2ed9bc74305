package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/ddbtypes"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/internal/ddbapi"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/testutil"
)

var _ ddbapi.API = (*testutil.MockDynamoDBClient)(nil)

func TestClient_New(t *testing.T) {
	base := aws.Config{Region: "eu-west-1"}

	tests := []struct {
		name         string
		opts         []ddbtypes.Option
		wantRegion   string
		wantEndpoint string
		wantRetries  int
	}{
		{
			name:       "region from aws config",
			opts:       []ddbtypes.Option{WithAWSConfig(&base)},
			wantRegion: "eu-west-1",
		},
		{
			name:       "default region",
			opts:       []ddbtypes.Option{WithAWSConfig(&aws.Config{})},
			wantRegion: DefaultRegion,
		},
		{
			name: "all options",
			opts: []ddbtypes.Option{
				WithAWSConfig(&base),
				WithRegion("ap-southeast-2"),
				WithEndpoint("http://localhost:8000"),
				WithMaxRetries(5),
			},
			wantRegion:   "ap-southeast-2",
			wantEndpoint: "http://localhost:8000",
			wantRetries:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(context.Background(), tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRegion, client.Region())

			sdkClient, ok := client.api.(*dynamodb.Client)
			require.True(t, ok)
			o := sdkClient.Options()
			assert.Equal(t, tt.wantEndpoint, aws.ToString(o.BaseEndpoint))
			if tt.wantRetries > 0 {
				assert.Equal(t, tt.wantRetries, o.RetryMaxAttempts)
			}
		})
	}
}

func TestNewWithClient(t *testing.T) {
	mock := &testutil.MockDynamoDBClient{}
	client := NewWithClient(mock)
	assert.Same(t, mock, client.api)
	assert.NotNil(t, client.logger)
}
