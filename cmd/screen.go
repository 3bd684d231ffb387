package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/candidates"
	"github.com/spigell/sauce-fit/internal/report"
	"github.com/spigell/sauce-fit/internal/screening"
	"github.com/spigell/sauce-fit/internal/team"
	"github.com/spigell/sauce-fit/internal/testresult"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const (
	PromptExit                = "Exit"
	PromptReportByFitLevel    = "Report by fit level"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptRemoveCandidate     = "Remove a candidate from the list"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var screenCmd = &cobra.Command{
	Use:   "screen <result.json>...",
	Short: "Evaluate a batch of test results and screen the candidates",
	Args:  cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("job", cmd.Flags().Lookup("job"))
		viper.BindPFlag("screening.exclude-file", cmd.Flags().Lookup("exclude-file"))
		viper.BindPFlag("screening.min-fit-level", cmd.Flags().Lookup("min-fit-level"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("job", "", "job profile id to evaluate every candidate against")
	screenCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	screenCmd.Flags().String("min-fit-level", "", "drop candidates below this fit level (excellent, good, moderate, low)")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions, print the report by fit level and exit")
}

func screen(cmd *cobra.Command, paths []string) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the sauce-fit screening", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	catalog, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading job catalog", zap.Error(err))
	}

	if config.Job != "" {
		if _, err := catalog.Get(config.Job); err != nil {
			logger.Fatal("checking job profile", zap.Error(err), zap.Strings("known jobs", catalog.IDs()))
		}
	}

	defaultTeam, err := teamComposition(config.Team)
	if err != nil {
		logger.Fatal("parsing team composition", zap.Error(err))
	}

	builder := report.NewBuilder(worktype.DefaultRegistry(), catalog, logger)

	results := evaluateFiles(ctx, builder, paths, config.Job, defaultTeam, config.Concurrency, logger)
	list := candidates.FromResults(results)

	steps, deps, model := prepareScreening(ctx, config, logger)

	for _, status := range screening.Describe(steps) {
		logger.Debug("screening step", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason), zap.Any("details", status.Details))
	}

	list, summary, err := screening.Run(ctx, screeningConfig(config, model), deps, steps, list)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	logger.Info("screening finished", zap.String("run_id", summary.RunID), zap.Int("candidates", list.Len()))

	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after screening"))
		return
	}

	if flag := cmd.Flag("auto-approve"); flag != nil && flag.Value.String() == "true" {
		printByFitLevel(cmd, logger, list)
		return
	}

	actions := promptui.Select{
		Label: "What next?",
		Items: []string{PromptReportByFitLevel, PromptCandidatesToFile, PromptAppendToExcludeFile, PromptRemoveCandidate, PromptExit},
	}

	for {
		_, action, err := actions.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of candidates", zap.Int("count", list.Len()))

		if err := handleAction(cmd, action, logger, config, list); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// evaluateFiles loads every record and evaluates the batch. A file that cannot
// be loaded becomes a failed result so the rest of the batch still runs.
func evaluateFiles(ctx context.Context, builder *report.Builder, paths []string, jobID string, defaultTeam team.Composition, limit int, logger *zap.Logger) []report.Result {
	inputs := make([]report.Input, 0, len(paths))
	var failed []report.Result

	for _, path := range paths {
		record, err := testresult.Load(path)
		if err != nil {
			logger.Warn("skipping test result", zap.String("path", path), zap.Error(err))
			failed = append(failed, report.Result{Input: report.Input{CandidateID: path}, Err: err})
			continue
		}
		logger.Debug("test result loaded", zap.String("path", path), zap.String("candidate", record.DisplayName()))
		inputs = append(inputs, inputFromRecord(record, jobID, defaultTeam))
	}

	results, err := report.EvaluateBatch(ctx, builder, inputs, limit)
	if err != nil {
		logger.Fatal("evaluating candidates", zap.Error(err))
	}

	return append(results, failed...)
}

func prepareScreening(ctx context.Context, config *Config, logger *zap.Logger) ([]screening.Filter, screening.Deps, string) {
	steps := screening.DefaultSteps()
	deps := screening.Deps{Logger: logger}

	explainer, model, err := newExplainer(ctx, config.AI, logger)
	if err != nil {
		logger.Info("skipping AI explanations", zap.String("reason", err.Error()))
		screening.DisableByName(steps, "ai_explain", err.Error())
		return steps, deps, ""
	}

	deps.Explainer = explainer
	return steps, deps, model
}

// screeningConfig maps the CLI config; model is the one the explainer resolved.
func screeningConfig(config *Config, model string) *screening.Config {
	cfg := &screening.Config{
		ExcludeFile: config.Screening.ExcludeFile,
		MinFitLevel: config.Screening.MinFitLevel,
	}

	if config.AI != nil {
		cfg.AI = &screening.AIConfig{
			Enabled:  config.AI.Enabled,
			Provider: config.AI.Provider,
			Model:    model,
		}
	}

	return cfg
}

func handleAction(cmd *cobra.Command, action string, logger *zap.Logger, config *Config, list *candidates.Candidates) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByFitLevel:
		printByFitLevel(cmd, logger, list)
		return nil
	case PromptCandidatesToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.Screening.ExcludeFile, logger, list)
	case PromptRemoveCandidate:
		return removeCandidate(logger, list)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printByFitLevel(cmd *cobra.Command, logger *zap.Logger, list *candidates.Candidates) {
	pretty, _ := json.MarshalIndent(list.ReportByFitLevel(), "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	logger.Debug("report by fit level printed", zap.Int("candidates count", list.Len()))
}

func appendToExcludeFile(path string, logger *zap.Logger, list *candidates.Candidates) error {
	if strings.TrimSpace(path) == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "set screening.exclude-file or --exclude-file"))
		return nil
	}

	excluded, err := candidates.LoadExcluded(path)
	if err != nil {
		return err
	}

	excluded.Append(list.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path))

	list.Exclude(excluded.IDs())
	return nil
}

func removeCandidate(logger *zap.Logger, list *candidates.Candidates) error {
	items := make([]string, 0, list.Len()+1)
	for _, item := range list.Items {
		label := item.ID
		if item.Name != "" {
			label = fmt.Sprintf("%s %s", item.ID, item.Name)
		}
		if item.Report != nil && item.Report.JobFit != nil {
			label = fmt.Sprintf("%s / %s / %d", label, item.Report.JobFit.FitLevel, item.Report.JobFit.OverallScore)
		}
		items = append(items, label)
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	id := list.Items[idx].ID
	list.RemoveByIndex(idx)
	logger.Info("candidate removed from the list", zap.String("candidate_id", id))

	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left"))
		return errExit
	}
	return nil
}
