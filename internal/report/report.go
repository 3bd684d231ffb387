// Package report assembles the engine stages into one candidate report.
package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/execution"
	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/profile"
	"github.com/spigell/sauce-fit/internal/scoring"
	"github.com/spigell/sauce-fit/internal/team"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// Input is everything known about one candidate. JobID and Team are optional.
type Input struct {
	CandidateID   string
	CandidateName string
	Answers       scoring.Answers
	Selections    scoring.Selections
	JobID         string
	Team          team.Composition
}

// ExecutionSection holds the candidate's execution profile and, when a job was
// evaluated, the job side and per-axis differences.
type ExecutionSection struct {
	Applicant   execution.Profile      `json:"applicant"`
	Job         *execution.Profile     `json:"job,omitempty"`
	Differences []execution.Difference `json:"differences"`
}

// Report is the complete evaluation of one candidate.
type Report struct {
	CandidateID   string            `json:"candidate_id"`
	CandidateName string            `json:"candidate_name,omitempty"`
	Scores        *scoring.Result   `json:"scores"`
	Profile       *profile.Analysis `json:"profile"`
	JobFit        *jobfit.Analysis  `json:"job_fit,omitempty"`
	Execution     ExecutionSection  `json:"execution"`
	Team          *team.Comparison  `json:"team,omitempty"`
}

// Payload returns the AI-explanation input when the report has a job side.
func (r *Report) Payload() (execution.Payload, bool) {
	if r.JobFit == nil || r.Execution.Job == nil {
		return execution.Payload{}, false
	}
	return execution.Payload{
		JobID:       r.JobFit.JobID,
		JobTitle:    r.JobFit.JobTitle,
		Job:         *r.Execution.Job,
		Applicant:   r.Execution.Applicant,
		Differences: append([]execution.Difference{}, r.Execution.Differences...),
	}, true
}

// FitLevel is the job fit verdict, or empty without a job.
func (r *Report) FitLevel() jobfit.FitLevel {
	if r.JobFit == nil {
		return ""
	}
	return r.JobFit.FitLevel
}

// Builder runs every stage against injected reference data. The zero value
// uses the default registry, no catalog and a no-op logger.
type Builder struct {
	catalog  *jobfit.Catalog
	logger   *zap.Logger
	analyzer *profile.Analyzer
	scorer   *jobfit.Scorer
}

func NewBuilder(registry *worktype.Registry, catalog *jobfit.Catalog, logger *zap.Logger) *Builder {
	if registry == nil {
		registry = worktype.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		catalog:  catalog,
		logger:   logger,
		analyzer: profile.NewAnalyzer(registry),
		scorer:   jobfit.NewScorer(registry),
	}
}

func (b *Builder) profileAnalyzer() *profile.Analyzer {
	if b.analyzer != nil {
		return b.analyzer
	}
	return profile.NewAnalyzer(worktype.DefaultRegistry())
}

func (b *Builder) fitScorer() *jobfit.Scorer {
	if b.scorer != nil {
		return b.scorer
	}
	return jobfit.NewScorer(worktype.DefaultRegistry())
}

func (b *Builder) log() *zap.Logger {
	if b.logger != nil {
		return b.logger
	}
	return zap.NewNop()
}

// Evaluate produces a report or an error, never a partial report.
func (b *Builder) Evaluate(in Input) (*Report, error) {
	scores, err := scoring.Aggregate(in.Answers, in.Selections)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: aggregate scores: %w", in.CandidateID, err)
	}

	analysis, err := b.profileAnalyzer().Analyze(scores.Vector, in.Selections)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: analyze profile: %w", in.CandidateID, err)
	}

	applicant, err := execution.Transform(scores.Vector)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: execution profile: %w", in.CandidateID, err)
	}

	report := &Report{
		CandidateID:   in.CandidateID,
		CandidateName: in.CandidateName,
		Scores:        scores,
		Profile:       analysis,
		Execution: ExecutionSection{
			Applicant:   applicant,
			Differences: []execution.Difference{},
		},
	}

	if in.JobID != "" {
		if err := b.evaluateJob(report, in.JobID, scores.Vector); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", in.CandidateID, err)
		}
	}

	comparison, err := team.Compare(in.Team, scores.Primary)
	if err != nil {
		return nil, fmt.Errorf("candidate %s: compare team: %w", in.CandidateID, err)
	}
	report.Team = comparison

	b.log().Debug("candidate evaluated",
		zap.String("candidate_id", in.CandidateID),
		zap.String("primary_type", string(scores.Primary)),
		zap.String("fit_level", string(report.FitLevel())),
	)

	return report, nil
}

func (b *Builder) evaluateJob(report *Report, jobID string, vector worktype.Vector) error {
	if b.catalog == nil {
		return fmt.Errorf("load job: %w", &fiterr.NotFoundError{Kind: "job profile", ID: jobID})
	}
	job, err := b.catalog.Get(jobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	outcome, err := b.fitScorer().Evaluate(vector.Distribution(), jobfit.Target{Method: jobfit.MethodWeighted, Profile: &job})
	if err != nil {
		return fmt.Errorf("job fit: %w", err)
	}

	jobProfile, err := execution.FromJobProfile(job)
	if err != nil {
		return fmt.Errorf("job execution profile: %w", err)
	}

	report.JobFit = outcome.Analysis
	report.Execution.Job = &jobProfile
	report.Execution.Differences = execution.Compare(jobProfile, report.Execution.Applicant)
	return nil
}
