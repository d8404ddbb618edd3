package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubS3Client struct {
	input *s3.PutObjectInput
	err   error
}

func (s *stubS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3ObjectUpload(t *testing.T) {
	client := &stubS3Client{}
	store := news3Object(client, "test-bucket")

	url, err := store.upload(context.Background(), "1234567890123_cover.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://test-bucket.s3.amazonaws.com/1234567890123_cover.jpg", url)

	require.NotNil(t, client.input)
	assert.Equal(t, "test-bucket", *client.input.Bucket)
	assert.Equal(t, "1234567890123_cover.jpg", *client.input.Key)

	body, err := io.ReadAll(client.input.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(body))
}

func TestS3ObjectUpload_Error(t *testing.T) {
	client := &stubS3Client{err: errors.New("connection reset")}
	store := news3Object(client, "test-bucket")

	_, err := store.upload(context.Background(), "1234567890123_cover.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
