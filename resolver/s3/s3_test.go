package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/assetkit/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func keyIs(key string) any {
	return mock.MatchedBy(func(in any) bool {
		switch v := in.(type) {
		case *s3.HeadObjectInput:
			return *v.Bucket == "assets" && *v.Key == key
		case *s3.GetObjectInput:
			return *v.Bucket == "assets" && *v.Key == key
		}
		return false
	})
}

func TestResolver_Exists(t *testing.T) {
	client := new(MockS3Client)
	r := NewResolver(client, "assets", "prefix")

	client.On("HeadObject", mock.Anything, keyIs("prefix/missing")).Return(nil, &types.NotFound{}).Once()
	client.On("HeadObject", mock.Anything, keyIs("prefix/hero.png")).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(3)}, nil).Once()
	client.On("HeadObject", mock.Anything, keyIs("prefix/denied")).Return(nil, errors.New("access denied")).Once()

	ok, err := r.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Exists(context.Background(), "hero.png")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = r.Exists(context.Background(), "denied")
	assert.EqualError(t, err, "access denied")

	client.AssertExpectations(t)
}

func TestResolver_Resolve(t *testing.T) {
	client := new(MockS3Client)
	r := NewResolver(client, "assets", "prefix/")
	data := []byte("pixels")

	client.On("GetObject", mock.Anything, keyIs("prefix/hero.png")).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		ContentRange:  aws.String(fmt.Sprintf("bytes 0-%d/%d", len(data)-1, len(data))),
	}, nil).Once()

	rc, err := r.Resolve(context.Background(), "hero.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestResolver_ResolveMissing(t *testing.T) {
	client := new(MockS3Client)
	r := NewResolver(client, "assets", "")

	client.On("GetObject", mock.Anything, keyIs("nope")).Return(nil, &types.NoSuchKey{})

	_, err := r.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, resolver.ErrNotFound)
}
