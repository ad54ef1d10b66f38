package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    string
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = params
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3StorePutAndDelete(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, S3Config{
		Bucket:        "journal",
		Prefix:        "/media/",
		PublicBaseURL: "https://cdn.example.com/",
		Region:        "us-east-1",
	})
	require.True(t, store.Enabled())

	url, err := store.Put(context.Background(), "profile_images/a.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/profile_images/a.png", url)
	assert.Equal(t, "media/profile_images/a.png", aws.ToString(client.put.Key))
	assert.Equal(t, "image/png", aws.ToString(client.put.ContentType))
	assert.Equal(t, "png-bytes", client.body)

	require.NoError(t, store.Delete(context.Background(), "profile_images/a.png"))
	assert.Equal(t, "media/profile_images/a.png", aws.ToString(client.deleted.Key))
}

func TestS3StoreURLWithoutCDN(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{}, S3Config{Bucket: "journal", Region: "eu-central-1"})
	assert.Equal(t, "https://journal.s3.eu-central-1.amazonaws.com/k.jpg", store.URL("k.jpg"))
}

func TestS3StorePutError(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{err: errors.New("denied")}, S3Config{Bucket: "journal"})
	_, err := store.Put(context.Background(), "k", "image/png", strings.NewReader(""))
	assert.ErrorContains(t, err, "denied")
}

func TestDisabled(t *testing.T) {
	var store ImageStore = Disabled{}
	assert.False(t, store.Enabled())
	_, err := store.Put(context.Background(), "k", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
	assert.NoError(t, store.Delete(context.Background(), "k"))
}

func TestImageHelpers(t *testing.T) {
	ext, ok := ImageExtension("IMAGE/PNG")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)
	_, ok = ImageExtension("application/pdf")
	assert.False(t, ok)

	assert.Equal(t, "my_cat.jpg", CleanFilename(`C:\photos\my cat.jpg`))
	assert.Equal(t, "passwd", CleanFilename("../../etc/passwd"))
	assert.Equal(t, "image", CleanFilename("..."))
}
