package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "no-reply@campus.test", FromName: "Campus Events"}, discardLogger())

	require.NoError(t, m.Send(context.Background(), "a@b.test", "Hi", "<p>hi</p>", "hi"))

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "Campus Events <no-reply@campus.test>", aws.ToString(in.Source))
	assert.Equal(t, []string{"a@b.test"}, in.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(in.Message.Body.Text.Data))
}

func TestSESMailer_SendOmitsEmptyBodies(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "no-reply@campus.test"}, discardLogger())

	require.NoError(t, m.Send(context.Background(), "a@b.test", "Hi", "", "plain"))
	assert.Equal(t, "no-reply@campus.test", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.Message.Body.Html)
	assert.NotNil(t, client.input.Message.Body.Text)
}

func TestSESMailer_SendError(t *testing.T) {
	boom := errors.New("throttled")
	m := newSESMailer(&fakeSES{err: boom}, MailerConfig{FromAddress: "x@y.test"}, discardLogger())

	err := m.Send(context.Background(), "a@b.test", "Hi", "", "hi")
	assert.ErrorIs(t, err, boom)
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr bool
	}{
		{name: "noop", config: MailerConfig{Provider: "noop"}},
		{name: "empty provider", config: MailerConfig{}},
		{name: "unknown provider", config: MailerConfig{Provider: "smtp"}},
		{name: "ses", config: MailerConfig{Provider: "ses", FromAddress: "x@y.test", SES: SESConfig{Region: "us-east-1"}}, wantSES: true},
		{name: "ses without from", config: MailerConfig{Provider: "ses"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
			if !tt.wantSES {
				assert.NoError(t, m.Send(context.Background(), "a@b.test", "s", "h", "t"))
			}
		})
	}
}
