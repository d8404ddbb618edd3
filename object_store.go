package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectStore interface {
	upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Object struct {
	client s3PutObjectAPI
	bucket string
}

func news3Object(client s3PutObjectAPI, bucket string) *s3Object {
	return &s3Object{client: client, bucket: bucket}
}

// upload puts the object under key, overwriting any previous object, and
// returns the bucket's public URL for it.
func (o *s3Object) upload(ctx context.Context, key string, body io.Reader) (string, error) {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
		Body:   body,
	})

	if err != nil {
		return "", fmt.Errorf("error uploading object to s3, %v", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", o.bucket, key), nil
}
