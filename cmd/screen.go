package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/resumekit/screener-cli/internal/inputs"
	"github.com/resumekit/screener-cli/internal/logger"
	"github.com/resumekit/screener-cli/internal/screening"
	"github.com/resumekit/screener-cli/internal/submit"
	"github.com/resumekit/screener-cli/internal/view"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes           = "Yes"
	PromptNo            = "No"
	PromptSaveReport    = "Save report to file"
	PromptOptimize      = "Get optimization suggestions"
	PromptScreenAnother = "Screen another resume"
	PromptExit          = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveReport, PromptOptimize, PromptScreenAnother, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Submit a resume and a job description for screening and render the report",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("file", "f", "", "path to the resume file (.pdf, .docx or .doc)")
	screenCmd.Flags().StringP("job-title", "t", "", "job title to screen against")
	screenCmd.Flags().String("job-description", "", "inline job description text")
	screenCmd.Flags().String("job-description-file", "", "file containing the job description text")
	screenCmd.Flags().StringP("weights", "w", "", "JSON object with per-category weight overrides")
	screenCmd.Flags().String("weights-file", "", "file containing JSON weight overrides")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without the action prompt")
}

// screen is the main command for the cli.
func screen(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener-cli", zap.String("version", version))

	client := screening.New(logger)
	if config.Server.URL != "" {
		client.APIURL = config.Server.URL
	}

	console := view.NewConsole(os.Stdout)
	controller := submit.NewController(client, console, logger)
	controller.SetMaxWait(config.Server.Timeout)

	if err := client.Ping(ctx); err != nil {
		logger.Fatal("screening service is unreachable",
			zap.Error(err),
			zap.String("url", client.APIURL),
		)
	}

	console.ShowUpload()

	filePath, _ := cmd.Flags().GetString("file")
	selectFile(controller, filePath, logger)

	form, err := resolveForm(cmd, config)
	if err != nil {
		logger.Fatal("resolving job inputs",
			zap.Error(err),
			zap.String("hint", "set --job-title and --job-description(-file), or the job section in the configuration file"),
		)
	}
	controller.SetForm(form)

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"

	for {
		err := controller.Submit(ctx)
		if err == nil {
			break
		}

		if autoApprove {
			logger.Fatal("screening failed", zap.Error(err))
		}

		// The controller keeps the file and form on failure, a retry
		// needs no re-entry.
		if !confirm("Screening failed. Try again?", logger) {
			return
		}
	}

	if autoApprove {
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, controller, console, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, controller *submit.Controller, console *view.Console, logger *zap.Logger) error {
	switch action {
	case PromptSaveReport:
		filename, err := controller.Outcome().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumped report to file", zap.String("filename", filename))
		return nil
	case PromptOptimize:
		outcome, err := controller.Optimize(ctx)
		if err != nil {
			// The failure is already on screen, keep the session alive.
			return nil
		}
		console.ShowOptimization(outcome.Optimization)
		return nil
	case PromptScreenAnother:
		return rescreen(ctx, controller, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// rescreen resets the controller and walks the user through a fresh
// submission.
func rescreen(ctx context.Context, controller *submit.Controller, logger *zap.Logger) error {
	controller.Reset()

	selectFile(controller, "", logger)

	title := promptString("Job title", logger)

	description, err := inputs.LoadRequired(inputs.Source{
		Name: "job description",
		File: promptString("Job description file", logger),
	})
	if err != nil {
		return err
	}

	controller.SetForm(submit.Form{
		JobTitle:       title,
		JobDescription: description,
		WeightsText:    promptOptional("Weight overrides JSON (optional)", logger),
	})

	return controller.Submit(ctx)
}

// selectFile keeps prompting until a file passes validation. An initial path
// may come from the --file flag.
func selectFile(controller *submit.Controller, path string, logger *zap.Logger) {
	if path == "" {
		path = promptString("Resume file path", logger)
	}

	for {
		if err := controller.SelectFile(path); err == nil {
			return
		}
		path = promptString("Resume file path", logger)
	}
}

func resolveForm(cmd *cobra.Command, config *Config) (submit.Form, error) {
	titleFlag, _ := cmd.Flags().GetString("job-title")
	descFlag, _ := cmd.Flags().GetString("job-description")
	descFileFlag, _ := cmd.Flags().GetString("job-description-file")
	weightsFlag, _ := cmd.Flags().GetString("weights")
	weightsFileFlag, _ := cmd.Flags().GetString("weights-file")

	title, err := inputs.LoadRequired(inputs.Source{
		Name:  "job title",
		Value: firstNonEmpty(titleFlag, config.Job.Title),
	})
	if err != nil {
		return submit.Form{}, err
	}

	description, err := inputs.LoadRequired(inputs.Source{
		Name:  "job description",
		Value: firstNonEmpty(descFlag, config.Job.Description),
		File:  firstNonEmpty(descFileFlag, config.Job.DescriptionFile),
	})
	if err != nil {
		return submit.Form{}, err
	}

	weights, err := inputs.Load(inputs.Source{
		Name:  "weights",
		Value: firstNonEmpty(weightsFlag, config.Job.Weights),
		File:  firstNonEmpty(weightsFileFlag, config.Job.WeightsFile),
	})
	if err != nil {
		return submit.Form{}, err
	}

	return submit.Form{
		JobTitle:       title,
		JobDescription: description,
		WeightsText:    weights,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}

	return ""
}

func promptString(label string, logger *zap.Logger) string {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}

	value, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	return strings.TrimSpace(value)
}

func promptOptional(label string, logger *zap.Logger) string {
	prompt := promptui.Prompt{Label: label}

	value, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	return strings.TrimSpace(value)
}

func confirm(label string, logger *zap.Logger) bool {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}

	_, choice, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	return choice == PromptYes
}
