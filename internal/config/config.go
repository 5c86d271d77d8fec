package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/kelseyhightower/envconfig"

	"github.com/Roma7-7-7/homework-notifier/internal/logging"
)

const (
	envPracticumToken = "PRACTICUM_TOKEN"
	envTelegramToken  = "TELEGRAM_TOKEN"
	envTelegramChatID = "TELEGRAM_CHAT_ID"
)

type Config struct {
	Dev            bool          `envconfig:"DEV" default:"false"`
	Endpoint       string        `envconfig:"ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryPeriod    time.Duration `envconfig:"RETRY_PERIOD" default:"10m"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	TelegramAPIURL string        `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`
	SSMPrefix      string        `envconfig:"SSM_PREFIX"`

	PracticumToken string `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

//go:generate mockgen -package mocks -destination mocks/ssm.go . ParameterStore

type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewConfig reads the configuration from the environment. When SSM_PREFIX is set,
// credentials missing from the environment are looked up in AWS SSM Parameter Store.
func NewConfig(ctx context.Context) (*Config, error) {
	res := &Config{}

	err := envconfig.Process("", res)
	if err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}

	if res.SSMPrefix == "" || !res.missingTokens() {
		return res, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if err = res.resolveSecrets(ctx, ssm.NewFromConfig(cfg)); err != nil {
		return nil, err
	}

	return res, nil
}

// CheckTokens reports whether all required credentials are present
// and logs every missing one.
func CheckTokens(conf *Config, log *slog.Logger) bool {
	ok := true
	for _, t := range conf.tokens() {
		if *t.value == "" {
			log.Log(context.Background(), logging.LevelCritical, "Required environment variable is missing", "name", t.env)
			ok = false
		}
	}
	return ok
}

type token struct {
	env       string
	parameter string
	value     *string
}

func (c *Config) tokens() []token {
	return []token{
		{env: envPracticumToken, parameter: "practicum-token", value: &c.PracticumToken},
		{env: envTelegramToken, parameter: "telegram-token", value: &c.TelegramToken},
		{env: envTelegramChatID, parameter: "telegram-chat-id", value: &c.TelegramChatID},
	}
}

func (c *Config) missingTokens() bool {
	for _, t := range c.tokens() {
		if *t.value == "" {
			return true
		}
	}
	return false
}

func (c *Config) resolveSecrets(ctx context.Context, store ParameterStore) error {
	for _, t := range c.tokens() {
		if *t.value != "" {
			continue
		}

		name := c.SSMPrefix + "/" + t.parameter
		param, err := store.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("get SSM parameter %s: %w", name, err)
		}
		if param.Parameter == nil || param.Parameter.Value == nil {
			continue
		}
		*t.value = *param.Parameter.Value
	}

	return nil
}
