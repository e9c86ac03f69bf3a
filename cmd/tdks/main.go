package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	sozluk "github.com/clydeofficial/tdk-sozluk"
	"github.com/clydeofficial/tdk-sozluk/pkg/querier"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

// exit reports err on stderr and terminates with code.
func exit(code int, err error) {
	fmt.Fprintf(os.Stderr, "tdks: %v\n", err)
	os.Exit(code)
}

type Config struct {
	ZapConfig string
	// Host is the address the server listens on
	Host string

	Remote     querier.Config
	Retries    int
	MaxWorkers int
}

// ZapConf returns the logger configuration. ZapConfig is a JSON zap config
// laid over the development defaults, so it only needs the keys it changes.
func (c *Config) ZapConf() (*zap.Config, error) {
	zapConf := zap.NewDevelopmentConfig()
	if c.ZapConfig == "" {
		return &zapConf, nil
	}
	if err := json.Unmarshal([]byte(c.ZapConfig), &zapConf); err != nil {
		return nil, fmt.Errorf("invalid zapconfig: %w", err)
	}
	return &zapConf, nil
}

func (c *Config) Client() *sozluk.Config {
	return &sozluk.Config{
		Config:     c.Remote,
		Retries:    c.Retries,
		MaxWorkers: c.MaxWorkers,
	}
}

func getConfig(args []string) (*Config, *zap.Config, error) {
	v := viper.New()
	flags := pflag.NewFlagSet("tdks", pflag.ContinueOnError)
	flags.StringP("config", "c", "config.yaml", "path to local config")
	flags.String("host", "localhost:8080", "address to listen on")
	flags.Int("retries", 0, "retries per lookup, 0 means the library default")
	flags.Int("maxworkers", 0, "dictionaries queried at once by /all, 0 means number of CPUs")
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, nil, err
	}
	v.SetEnvPrefix("TDK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"zapconfig", "remote.host", "remote.protocol", "remote.assethost", "remote.timeout", "remote.useragent", "remote.basebackoff"} {
		if err := v.BindEnv(key); err != nil {
			return nil, nil, err
		}
	}

	configPath := v.GetString("config")
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err == nil {
		fmt.Printf("Using config file: %s\n", configPath)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("error while unmarshaling config: %w", err)
	}
	zapConf, err := conf.ZapConf()
	if err != nil {
		return nil, nil, err
	}
	return &conf, zapConf, nil
}

func main() {
	conf, zapConf, err := getConfig(os.Args[1:])
	if err != nil {
		exit(codeErrorArgs, fmt.Errorf("parse arguments: %w", err))
	}
	logger, err := zapConf.Build()
	if err != nil {
		exit(codeErrorArgs, fmt.Errorf("build logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting server", zap.String("version", sozluk.Version))
	server := New(logger, conf, sozluk.New(nil, logger.Named("sozluk"), conf.Client()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := server.Close(context.Background()); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Listening started", zap.String("address", "http://"+conf.Host))
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
			exit(codeInternalError, err)
		}
	}
	logger.Info("Closed")
}
