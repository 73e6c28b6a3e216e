package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "PRODUCTLIST_CONFIG_FILE"
	envPrefix         = "PRODUCTLIST"
)

const DefaultCatalogURL = "https://raw.githubusercontent.com/SAKSITKU/STOCK_PRODUCT-UXUI/refs/heads/main/product1.json"

type catalog struct {
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ClientEventsTopic  string   `mapstructure:"client_events_topic"`
	TLS                tlsFiles `mapstructure:"tls"`
}

// Enabled reports whether client events go to kafka.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel           slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr     string        `mapstructure:"http_server_addr"`
	HTTPHandlerTimeout time.Duration `mapstructure:"http_handler_timeout"`
	AllowedOrigins     []string      `mapstructure:"allowed_origins"`
	Catalog            catalog       `mapstructure:"catalog"`
	Broker             broker        `mapstructure:"broker"`
}

func Load() Config {
	cfg, err := load(os.Args[1:])
	if err != nil {
		die(err)
	}
	return cfg
}

func load(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := getConfigFilepath(args)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err = v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("http_handler_timeout", "30s")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("catalog.url", DefaultCatalogURL)
	v.SetDefault("catalog.request_timeout", "0s")
	v.SetDefault("catalog.max_attempts", 1)
	v.SetDefault("catalog.retry_delay", "200ms")
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.client_events_topic", "productlist-client-events")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

func (c Config) validate() error {
	switch {
	case c.Catalog.URL == "":
		return fmt.Errorf("catalog.url is required")
	case c.Catalog.MaxAttempts < 1:
		return fmt.Errorf("catalog.max_attempts must be at least 1")
	case c.HTTPHandlerTimeout <= 0:
		return fmt.Errorf("http_handler_timeout must be positive")
	case c.Broker.Enabled() && len(c.Broker.SchemaRegistryURLs) == 0:
		return fmt.Errorf("broker.schema_registry_urls is required with seed brokers")
	}
	return nil
}

func getConfigFilepath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("productlist", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", err
	}
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env, nil
	}
	return *arg, nil
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HTTPHandlerTimeout=%q
	AllowedOrigins=%q

	Catalog:
	URL=%q
	RequestTimeout=%q
	MaxAttempts=%d
	RetryDelay=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ClientEventsTopic=%q
	TLS=%t

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HTTPHandlerTimeout,
		c.AllowedOrigins,
		c.Catalog.URL,
		c.Catalog.RequestTimeout,
		c.Catalog.MaxAttempts,
		c.Catalog.RetryDelay,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ClientEventsTopic,
		c.Broker.TLS.CA != "",
	)
}
