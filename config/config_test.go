package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSSM struct {
	ssmiface.SSMAPI

	calls  []*ssm.GetParameterInput
	output *ssm.GetParameterOutput
	err    error
}

func (s *stubSSM) GetParameterWithContext(ctx aws.Context, input *ssm.GetParameterInput, opts ...request.Option) (*ssm.GetParameterOutput, error) {
	s.calls = append(s.calls, input)
	return s.output, s.err
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvAccessKey, EnvAccessKeyParameter, EnvBaseURL, EnvTimeout, EnvRegion, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "", c.AccessKey)
	assert.Equal(t, "", c.AccessKeyParameter)
	assert.Equal(t, "https://emoji-api.com/emojis", c.BaseURL)
	assert.Equal(t, time.Duration(0), c.Timeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoad_env(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAccessKey, "abc123")
	t.Setenv(EnvBaseURL, "http://localhost:9999/emojis")
	t.Setenv(EnvTimeout, "2500ms")
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "text")

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "abc123", c.AccessKey)
	assert.Equal(t, "http://localhost:9999/emojis", c.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, c.Timeout)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)

	client := c.Client()
	assert.Equal(t, "abc123", client.AccessKey)
	assert.Equal(t, "http://localhost:9999/emojis", client.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, client.HTTPClient.Timeout)
}

func TestLoad_invalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		clearEnv(t)
		t.Setenv(EnvTimeout, v)

		_, err := Load()
		assert.Error(t, err, v)
	}
}

func TestResolveAccessKey(t *testing.T) {
	stub := &stubSSM{output: &ssm.GetParameterOutput{
		Parameter: &ssm.Parameter{Value: aws.String("from-ssm")},
	}}

	c := &Config{
		AccessKeyParameter: "/emoji/api-key",
		Region:             "us-east-1",
		ssmFunc:            func(client.ConfigProvider) ssmiface.SSMAPI { return stub },
	}

	err := c.ResolveAccessKey(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "from-ssm", c.AccessKey)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "/emoji/api-key", aws.StringValue(stub.calls[0].Name))
	assert.True(t, aws.BoolValue(stub.calls[0].WithDecryption))
}

func TestResolveAccessKey_skipped(t *testing.T) {
	cases := []*Config{
		{AccessKey: "direct", AccessKeyParameter: "/emoji/api-key"},
		{},
	}

	for _, c := range cases {
		stub := &stubSSM{}
		c.ssmFunc = func(client.ConfigProvider) ssmiface.SSMAPI { return stub }
		before := c.AccessKey

		assert.NoError(t, c.ResolveAccessKey(context.Background()))
		assert.Equal(t, before, c.AccessKey)
		assert.Empty(t, stub.calls)
	}
}

func TestResolveAccessKey_error(t *testing.T) {
	stub := &stubSSM{err: awserr.New(ssm.ErrCodeParameterNotFound, "not found", nil)}

	c := &Config{
		AccessKeyParameter: "/emoji/missing",
		Region:             "us-east-1",
		ssmFunc:            func(client.ConfigProvider) ssmiface.SSMAPI { return stub },
	}

	err := c.ResolveAccessKey(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/emoji/missing")
	assert.Equal(t, "", c.AccessKey)
}

func TestResolveAccessKey_noValue(t *testing.T) {
	stub := &stubSSM{output: &ssm.GetParameterOutput{}}

	c := &Config{
		AccessKeyParameter: "/emoji/api-key",
		Region:             "us-east-1",
		ssmFunc:            func(client.ConfigProvider) ssmiface.SSMAPI { return stub },
	}

	assert.Error(t, c.ResolveAccessKey(context.Background()))
}
