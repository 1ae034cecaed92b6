package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

func TestS3Store_Upload(t *testing.T) {
	up := &fakeUploader{}
	store := newS3Store(up, "posters", "https://cdn.campus.test/")

	url, err := store.Upload(context.Background(), "events/org1/abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.campus.test/events/org1/abc.png", url)
	assert.Equal(t, "posters", aws.ToString(up.input.Bucket))
	assert.Equal(t, "events/org1/abc.png", aws.ToString(up.input.Key))
	assert.Equal(t, "image/png", aws.ToString(up.input.ContentType))
	assert.Equal(t, "png-bytes", up.body)
}

func TestS3Store_UploadErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := newS3Store(&fakeUploader{err: boom}, "posters", "https://cdn.campus.test")

	_, err := store.Upload(context.Background(), "events/x.png", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, boom)

	_, err = store.Upload(context.Background(), "/", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewS3Store(t *testing.T) {
	_, err := NewS3Store(S3Config{Region: "us-east-1"})
	assert.Error(t, err)

	store, err := NewS3Store(S3Config{Region: "eu-west-1", Bucket: "posters"})
	require.NoError(t, err)
	assert.Equal(t, "https://posters.s3.eu-west-1.amazonaws.com", store.baseURL)
}
