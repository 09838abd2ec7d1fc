package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ServiceConfig is the deployment configuration: the shared pool DSN
// (host/user/pass, no schema) and the base64 session signing secret.
type ServiceConfig struct {
	DSN           string `yaml:"dsn"`
	SigningSecret string `yaml:"signingSecret"`
}

var (
	once    sync.Once
	cfg     *ServiceConfig
	loadErr error
)

// LoadServiceConfig reads the yaml config from the SSM parameter named by
// SHIFTPAY_CONFIG_PARAM, or falls back to plain env vars (DSN,
// SHIFTPAY_SIGNING_SECRET) for local runs.
func LoadServiceConfig(ctx context.Context) (*ServiceConfig, error) {
	once.Do(func() {
		paramName := os.Getenv("SHIFTPAY_CONFIG_PARAM")
		if paramName == "" {
			cfg = &ServiceConfig{
				DSN:           os.Getenv("DSN"),
				SigningSecret: os.Getenv("SHIFTPAY_SIGNING_SECRET"),
			}
			return
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(awsCfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed ServiceConfig
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		cfg = &parsed
	})

	return cfg, loadErr
}
