package util

import (
	"errors"
	"fmt"
	_ "github.com/joho/godotenv/autoload"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

// Bool reports whether the value is a truthy literal ("1", "true", ...).
func (v configValue) Bool() bool {
	b, err := strconv.ParseBool(v.Value)
	return err == nil && b
}

// List splits a comma separated value, dropping blank entries.
func (v configValue) List() []string {
	var values []string
	for _, part := range strings.Split(v.Value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	return values
}

// Duration parses the value, falling back to fallback when it is empty or malformed.
func (v configValue) Duration(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.Value)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

type Config struct {
	DbConnectionString   configValue
	SeqUrl               configValue
	SeqToken             configValue
	Environment          configValue
	HttpAddr             configValue
	AdminPassword        configValue
	SessionSecret        configValue
	SessionTtl           configValue
	RedisUrl             configValue
	RedisPassword        configValue
	UnitIdPrefix         configValue
	BookingAllowReReview configValue
	CorsAllowedOrigins   configValue
}

func NewConfig() *Config {
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"
	const httpAddrName = "HTTP_ADDR"
	const adminPasswordName = "ADMIN_PASSWORD"
	const sessionSecretName = "SESSION_SECRET"
	const sessionTtlName = "SESSION_TTL"
	const redisUrlName = "REDIS_URL"
	const redisPasswordName = "REDIS_PASSWORD"
	const unitIdPrefixName = "UNIT_ID_PREFIX"
	const bookingAllowReReviewName = "BOOKING_ALLOW_REREVIEW"
	const corsAllowedOriginsName = "CORS_ALLOWED_ORIGINS"

	return &Config{
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     false,
			defaultValue: "file:data/app.db",
			errorMessage: fmt.Sprintf("make sure that environment variable %s is a postgres DSN or a sqlite file DSN", dbConnectionStringName),
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
		HttpAddr: configValue{
			envVarName:   httpAddrName,
			required:     false,
			defaultValue: ":8080",
		},
		AdminPassword: configValue{
			envVarName:   adminPasswordName,
			required:     false,
			defaultValue: "admin123",
		},
		SessionSecret: configValue{
			envVarName: sessionSecretName,
			required:   false,
		},
		SessionTtl: configValue{
			envVarName:   sessionTtlName,
			required:     false,
			defaultValue: "12h",
		},
		RedisUrl: configValue{
			envVarName: redisUrlName,
			required:   false,
		},
		RedisPassword: configValue{
			envVarName: redisPasswordName,
			required:   false,
		},
		UnitIdPrefix: configValue{
			envVarName:   unitIdPrefixName,
			required:     false,
			defaultValue: "SH",
		},
		BookingAllowReReview: configValue{
			envVarName:   bookingAllowReReviewName,
			required:     false,
			defaultValue: "false",
		},
		CorsAllowedOrigins: configValue{
			envVarName:   corsAllowedOriginsName,
			required:     false,
			defaultValue: "*",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		config = load()
	}

	return config
}

func load() *Config {
	c := NewConfig()

	values := []*configValue{
		&c.DbConnectionString,
		&c.SeqUrl,
		&c.SeqToken,
		&c.Environment,
		&c.HttpAddr,
		&c.AdminPassword,
		&c.SessionSecret,
		&c.SessionTtl,
		&c.RedisUrl,
		&c.RedisPassword,
		&c.UnitIdPrefix,
		&c.BookingAllowReReview,
		&c.CorsAllowedOrigins,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return c
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" {
		v = m.defaultValue
	}

	m.Value = v
	return nil
}
