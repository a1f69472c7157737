package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	ENV_PREFIX = "MINTER"

	LocalSigner  = "local"
	RemoteSigner = "remote"
)

type Config struct {
	LogLevel                  zerolog.Level
	HealthPort                uint16
	ApiAddr                   string
	OpenTelemetryCollectorURL string
	Env                       string
	ExplorerURL               string
	StatusTTL                 time.Duration

	Venue  VenueConfig
	Signer SignerConfig
	Order  OrderConfig
	Intent IntentConfig

	ChainConfig map[string]interface{}
}

type VenueConfig struct {
	URL          string
	QuoteType    string
	QuoteRetries int
	Timeout      time.Duration
}

type SignerConfig struct {
	Type     string
	Key      string
	Keystore string
	Password string
	URL      string
	ApiToken string
	Address  string
	Timeout  time.Duration
}

type OrderConfig struct {
	Validity      time.Duration
	NonceStrategy string
}

// IntentConfig is the intent executed by the run command. Amount is kept as
// a string so that an empty value means unset when merging overrides.
type IntentConfig struct {
	Amount           string `mapstructure:"amount"`
	Asset            string `mapstructure:"asset"`
	Side             string `mapstructure:"side"`
	Beneficiary      string `mapstructure:"beneficiary"`
	InfiniteApproval bool   `mapstructure:"infiniteApproval"`
}

type RawConfig struct {
	LogLevel                  string `mapstructure:"logLevel" default:"info"`
	HealthPort                uint16 `mapstructure:"healthPort" default:"9001"`
	ApiAddr                   string `mapstructure:"apiAddr" default:":3000"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL"`
	Env                       string `mapstructure:"env" default:"dev"`
	ExplorerURL               string `mapstructure:"explorerURL" default:"https://etherscan.io"`
	// seconds
	StatusTTL uint64 `mapstructure:"statusTTL" default:"3600"`

	Venue  RawVenueConfig  `mapstructure:"venue"`
	Signer RawSignerConfig `mapstructure:"signer"`
	Order  RawOrderConfig  `mapstructure:"order"`
	Intent IntentConfig    `mapstructure:"intent"`

	ChainConfig map[string]interface{} `mapstructure:"chain"`
}

type RawVenueConfig struct {
	URL          string `mapstructure:"url" default:"https://public.api.ethena.fi/"`
	QuoteType    string `mapstructure:"quoteType" default:"ALGO"`
	QuoteRetries int    `mapstructure:"quoteRetries"`
	Timeout      uint64 `mapstructure:"timeout" default:"10"`
}

type RawSignerConfig struct {
	Type     string `mapstructure:"type" default:"local"`
	Key      string `mapstructure:"key"`
	Keystore string `mapstructure:"keystore"`
	Password string `mapstructure:"password"`
	URL      string `mapstructure:"url"`
	ApiToken string `mapstructure:"apiToken"`
	Address  string `mapstructure:"address"`
	Timeout  uint64 `mapstructure:"timeout" default:"300"`
}

type RawOrderConfig struct {
	Validity      uint64 `mapstructure:"validity" default:"60"`
	NonceStrategy string `mapstructure:"nonceStrategy" default:"monotonic"`
}

func (c *RawConfig) Validate() error {
	var err error
	if c.Venue.QuoteRetries < 0 {
		err = multierr.Append(err, fmt.Errorf("venue.quoteRetries can not be negative"))
	}

	switch c.Signer.Type {
	case LocalSigner:
		if c.Signer.Key == "" && c.Signer.Keystore == "" {
			err = multierr.Append(err, fmt.Errorf("local signer requires signer.key or signer.keystore"))
		}
	case RemoteSigner:
		if c.Signer.URL == "" {
			err = multierr.Append(err, fmt.Errorf("remote signer requires signer.url"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown signer type %s", c.Signer.Type))
	}

	if c.ChainConfig == nil {
		err = multierr.Append(err, fmt.Errorf("missing chain config"))
	}
	return err
}

// GetConfigFromFile reads the config file at path. Non-zero fields of
// overrides replace the values read from the file.
func GetConfigFromFile(path string, overrides *Config) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	return processConfig(v, overrides)
}

// GetConfigFromENV reads the configuration from MINTER_ prefixed environment
// variables, loading envFile first if it exists.
func GetConfigFromENV(envFile string, overrides *Config) (*Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	err := bindEnvs(v, reflect.TypeOf(RawConfig{}), "")
	if err != nil {
		return nil, err
	}
	for _, key := range chainEnvKeys {
		err = v.BindEnv("chain." + key)
		if err != nil {
			return nil, err
		}
	}

	return processConfig(v, overrides)
}

// chainEnvKeys are the chain config keys that can be set from the environment.
var chainEnvKeys = []string{
	"id",
	"name",
	"endpoint",
	"blocktime",
	"blockConfirmations",
	"receiptTimeout",
	"mintingContract",
	"domainName",
	"domainVersion",
}

// bindEnvs binds every mapstructure key of t so viper resolves it from the environment.
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || field.Type.Kind() == reflect.Map {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			err := bindEnvs(v, field.Type, key)
			if err != nil {
				return err
			}
			continue
		}

		err := v.BindEnv(key)
		if err != nil {
			return err
		}
	}
	return nil
}

func processConfig(v *viper.Viper, overrides *Config) (*Config, error) {
	var raw RawConfig
	err := v.Unmarshal(&raw)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&raw)
	if err != nil {
		return nil, err
	}

	err = raw.Validate()
	if err != nil {
		return nil, err
	}

	logLevel, err := zerolog.ParseLevel(raw.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("unable to parse log level: %w", err)
	}

	config := &Config{
		LogLevel:                  logLevel,
		HealthPort:                raw.HealthPort,
		ApiAddr:                   raw.ApiAddr,
		OpenTelemetryCollectorURL: raw.OpenTelemetryCollectorURL,
		Env:                       raw.Env,
		ExplorerURL:               raw.ExplorerURL,
		// nolint:gosec
		StatusTTL: time.Duration(raw.StatusTTL) * time.Second,
		Venue: VenueConfig{
			URL:          raw.Venue.URL,
			QuoteType:    raw.Venue.QuoteType,
			QuoteRetries: raw.Venue.QuoteRetries,
			// nolint:gosec
			Timeout: time.Duration(raw.Venue.Timeout) * time.Second,
		},
		Signer: SignerConfig{
			Type:     raw.Signer.Type,
			Key:      raw.Signer.Key,
			Keystore: raw.Signer.Keystore,
			Password: raw.Signer.Password,
			URL:      raw.Signer.URL,
			ApiToken: raw.Signer.ApiToken,
			Address:  raw.Signer.Address,
			// nolint:gosec
			Timeout: time.Duration(raw.Signer.Timeout) * time.Second,
		},
		Order: OrderConfig{
			// nolint:gosec
			Validity:      time.Duration(raw.Order.Validity) * time.Second,
			NonceStrategy: raw.Order.NonceStrategy,
		},
		Intent:      raw.Intent,
		ChainConfig: raw.ChainConfig,
	}

	if overrides != nil {
		err = mergo.Merge(config, overrides, mergo.WithOverride)
		if err != nil {
			return nil, err
		}
	}

	return config, nil
}
