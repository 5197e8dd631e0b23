package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/config"
)

type MockS3 struct {
	mock.Mock
	body string
}

func (m *MockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		m.body = string(data)
	}
	args := m.Called(aws.ToString(params.Bucket), aws.ToString(params.Key))
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func writeTempReport(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "orders_11-01-2023_02-29-2024.csv")
	require.NoError(t, os.WriteFile(p, []byte("name,date\n"), 0644))
	return p
}

func TestS3Uploader_Upload(t *testing.T) {
	client := new(MockS3)
	client.On("PutObject", "reports-bucket", "delivery/orders_11-01-2023_02-29-2024.csv").
		Return(&s3.PutObjectOutput{}, nil)

	u := NewS3UploaderWithClient(client, config.UploadConfig{
		S3Bucket: "reports-bucket",
		S3Prefix: "delivery",
		Region:   "us-east-1",
	}, nil)

	url, err := u.Upload(context.Background(), writeTempReport(t))
	require.NoError(t, err)
	assert.Equal(t, "https://reports-bucket.s3.us-east-1.amazonaws.com/delivery/orders_11-01-2023_02-29-2024.csv", url)
	assert.Equal(t, "name,date\n", client.body)
	client.AssertExpectations(t)
}

func TestS3Uploader_Error(t *testing.T) {
	client := new(MockS3)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	u := NewS3UploaderWithClient(client, config.UploadConfig{S3Bucket: "b", Region: "us-east-1"}, nil)

	_, err := u.Upload(context.Background(), writeTempReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Uploader_MissingFile(t *testing.T) {
	u := NewS3UploaderWithClient(new(MockS3), config.UploadConfig{S3Bucket: "b"}, nil)

	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestS3Uploader_Key(t *testing.T) {
	u := NewS3UploaderWithClient(new(MockS3), config.UploadConfig{}, nil)
	assert.Equal(t, "orders.csv", u.Key("/tmp/x/orders.csv"))
}
