package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	ListenAddr            string `yaml:"listenAddr"`
	DataDir               string `yaml:"dataDir"`
	Storage               string `yaml:"storage"` // file, postgres
	PostgresDsn           string `yaml:"postgresDsn"`
	ExportIntervalSeconds int    `yaml:"exportIntervalSeconds"`
	EnableTrace           bool   `yaml:"enableTrace"`
	TraceEndpoint         string `yaml:"traceEndpoint"`
}

// ExportInterval returns the refresh period for the export scheduler.
func (s Server) ExportInterval() time.Duration {
	return time.Duration(s.ExportIntervalSeconds) * time.Second
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:            ":8060",
			DataDir:               "./data",
			Storage:               "file",
			ExportIntervalSeconds: 60,
		},
	}
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Default()
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.ExportIntervalSeconds <= 0 {
		config.Server.ExportIntervalSeconds = 60
	}

	return config, nil
}
