package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/ai"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/report"
	"github.com/spigell/sauce-fit/internal/team"
	"github.com/spigell/sauce-fit/internal/testresult"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const PromptNoJob = "(no job)"

type evaluation struct {
	Report      *report.Report  `json:"report"`
	Explanation *ai.Explanation `json:"explanation,omitempty"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <result.json>",
	Short: "Evaluate one candidate's test result and print the report",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("job", cmd.Flags().Lookup("job"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("job", "", "job profile id to evaluate against")
	evaluateCmd.Flags().BoolP("select-job", "s", false, "choose the job profile interactively")
	evaluateCmd.Flags().Bool("explain", false, "ask the AI provider to explain the execution profile gaps")
}

func evaluate(cmd *cobra.Command, path string) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	catalog, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading job catalog", zap.Error(err))
	}

	defaultTeam, err := teamComposition(config.Team)
	if err != nil {
		logger.Fatal("parsing team composition", zap.Error(err))
	}

	record, err := testresult.Load(path)
	if err != nil {
		logger.Fatal("loading test result", zap.Error(err))
	}
	logger.Info("test result loaded", zap.String("path", path), zap.String("candidate", record.DisplayName()))

	jobID := config.Job
	if flag := cmd.Flag("select-job"); flag != nil && flag.Value.String() == "true" {
		jobID, err = selectJob(catalog)
		if err != nil {
			logger.Fatal("selecting job", zap.Error(err))
		}
	}

	builder := report.NewBuilder(worktype.DefaultRegistry(), catalog, logger)

	rep, err := builder.Evaluate(inputFromRecord(record, jobID, defaultTeam))
	if err != nil {
		logger.Fatal("evaluating candidate", zap.String("path", path), zap.Error(err))
	}

	out := evaluation{Report: rep}

	if flag := cmd.Flag("explain"); flag != nil && flag.Value.String() == "true" {
		out.Explanation = explain(ctx, config, logger, rep)
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

// explain never fails the command; a missing explanation is logged.
func explain(ctx context.Context, config *Config, logger *zap.Logger, rep *report.Report) *ai.Explanation {
	payload, ok := rep.Payload()
	if !ok {
		logger.Warn("skipping AI explanation", zap.String("reason", "no job profile was evaluated"))
		return nil
	}

	explainer, _, err := newExplainer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI explanation", zap.Error(err))
		return nil
	}

	explanation, err := explainer.Explain(ctx, payload)
	if err != nil {
		logger.Warn("AI explanation failed", zap.Error(err))
		return nil
	}
	return explanation
}

func selectJob(catalog *jobfit.Catalog) (string, error) {
	items := []string{PromptNoJob}
	items = append(items, catalog.IDs()...)

	jobPrompt := promptui.Select{
		Label: "Choose a job profile and press ENTER",
		Items: items,
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return "", err
	}
	if selected == PromptNoJob {
		return "", nil
	}
	return selected, nil
}

// inputFromRecord prefers the team stored in the record over the configured one.
func inputFromRecord(record *testresult.Record, jobID string, defaultTeam team.Composition) report.Input {
	composition := record.Team
	if len(composition) == 0 {
		composition = defaultTeam
	}

	return report.Input{
		CandidateID:   record.CandidateID,
		CandidateName: record.CandidateName,
		Answers:       record.Answers(),
		Selections:    record.VerbSelections(),
		JobID:         jobID,
		Team:          composition,
	}
}
