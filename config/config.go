// Package config loads the emoji lookup function settings from the
// environment, an optional .env file and, for the access key, optionally from
// AWS SSM Parameter Store.
package config

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/prognoshealth/emojiproxy/emoji"
)

// Environment variable names.
const (
	EnvAccessKey          = "EMOJI_API"
	EnvAccessKeyParameter = "EMOJI_API_PARAMETER"
	EnvBaseURL            = "EMOJI_API_URL"
	EnvTimeout            = "EMOJI_API_TIMEOUT"
	EnvRegion             = "AWS_REGION"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
)

// Config holds everything needed to build the lookup handler.
type Config struct {
	AccessKey          string
	AccessKeyParameter string
	BaseURL            string
	Timeout            time.Duration
	Region             string
	LogLevel           string
	LogFormat          string

	ssmFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// Load reads the configuration. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
//
// The access key is not validated, an empty key is passed upstream as is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvBaseURL, emoji.DefaultBaseURL)
	v.SetDefault(EnvTimeout, "0s")
	v.SetDefault(EnvRegion, "us-east-1")
	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvLogFormat, "json")

	timeout, err := time.ParseDuration(v.GetString(EnvTimeout))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", EnvTimeout)
	}

	if timeout < 0 {
		return nil, errors.Errorf("invalid %s: negative duration %s", EnvTimeout, timeout)
	}

	return &Config{
		AccessKey:          v.GetString(EnvAccessKey),
		AccessKeyParameter: v.GetString(EnvAccessKeyParameter),
		BaseURL:            v.GetString(EnvBaseURL),
		Timeout:            timeout,
		Region:             v.GetString(EnvRegion),
		LogLevel:           v.GetString(EnvLogLevel),
		LogFormat:          v.GetString(EnvLogFormat),
	}, nil
}

// svc is used internally to assist stubs on ssm for testing
func (c *Config) svc(p client.ConfigProvider) ssmiface.SSMAPI {
	if c.ssmFunc != nil {
		return c.ssmFunc(p)
	}

	return ssm.New(p)
}

// ResolveAccessKey fetches the access key from the configured SSM parameter
// when no key was given directly. It is a no-op otherwise.
func (c *Config) ResolveAccessKey(ctx context.Context) error {
	if c.AccessKey != "" || c.AccessKeyParameter == "" {
		return nil
	}

	s, err := session.NewSession(&aws.Config{
		Region: aws.String(c.Region),
	})
	if err != nil {
		return errors.Wrap(err, "failed getting session")
	}

	out, err := c.svc(s).GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.AccessKeyParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return errors.Wrapf(err, "failed getting parameter %s", c.AccessKeyParameter)
	}

	if out.Parameter == nil {
		return errors.Errorf("parameter %s has no value", c.AccessKeyParameter)
	}

	c.AccessKey = aws.StringValue(out.Parameter.Value)
	return nil
}

// Client builds the emoji api client described by the configuration.
func (c *Config) Client() *emoji.Client {
	return emoji.NewClient(c.AccessKey, emoji.WithBaseURL(c.BaseURL), emoji.WithTimeout(c.Timeout))
}
