package cmd

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/resumekit/screener-cli/internal/logger"
	"github.com/resumekit/screener-cli/internal/report"
	"github.com/resumekit/screener-cli/internal/screening"
	"github.com/resumekit/screener-cli/internal/submit"
	"github.com/resumekit/screener-cli/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume without screening it",
	Run: func(cmd *cobra.Command, _ []string) {
		parse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("file", "f", "", "path to the resume file (.pdf, .docx or .doc)")
	parseCmd.MarkFlagRequired("file")
}

func parse(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client := screening.New(logger)
	if config.Server.URL != "" {
		client.APIURL = config.Server.URL
	}

	path, _ := cmd.Flags().GetString("file")

	candidate, err := submit.StatFile(path)
	if err != nil {
		logger.Fatal("selecting resume file", zap.Error(err))
	}

	logger.Info("parsing resume",
		zap.String("file", candidate.Name),
		zap.String("size", candidate.SizeMiB()),
	)

	file, err := os.Open(path)
	if err != nil {
		logger.Fatal("opening resume file", zap.Error(err))
	}
	defer file.Close()

	wait := config.Server.Timeout
	if wait <= 0 {
		wait = 300 * time.Second
	}

	reqCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	parsed, err := client.Parse(reqCtx, candidate.Name, file)
	if err != nil {
		logger.Fatal("parsing failed", zap.Error(err))
	}

	view.NewConsole(os.Stdout).ShowOverview(report.RenderOverview(parsed))
}
