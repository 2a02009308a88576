package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "screener-cli"
)

type Config struct {
	Server *ServerConfig `mapstructure:"server"`
	Job    *JobConfig    `mapstructure:"job"`
}

type ServerConfig struct {
	URL string `mapstructure:"url"`
	// Timeout bounds a single screening request. Zero keeps the built-in
	// default of 300 seconds.
	Timeout time.Duration `mapstructure:"timeout"`
}

type JobConfig struct {
	Title           string `mapstructure:"title"`
	Description     string `mapstructure:"description"`
	DescriptionFile string `mapstructure:"description-file"`
	Weights         string `mapstructure:"weights"`
	WeightsFile     string `mapstructure:"weights-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "screener-cli submits a resume and a job description to a screening service and renders the match report",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("server.url", "SCREENER_API_URL"); err != nil {
		log.Fatalf("binding SCREENER_API_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screener-cli.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional when everything comes from flags, but an
	// explicitly named file must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.Job == nil {
		config.Job = &JobConfig{}
	}

	return config, nil
}
