package jobfit

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// Catalog is an immutable id -> JobProfile lookup.
type Catalog struct {
	profiles map[string]JobProfile
}

// NewCatalog validates every profile and rejects duplicate ids.
func NewCatalog(profiles ...JobProfile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]JobProfile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("job profile %q: %w", p.JobID, err)
		}
		if _, dup := c.profiles[p.JobID]; dup {
			return nil, fiterr.Validation("job_id", "job profile %q defined twice", p.JobID)
		}
		c.profiles[p.JobID] = p.Clone()
	}
	return c, nil
}

// Get returns a copy of the profile with the given id.
func (c *Catalog) Get(id string) (JobProfile, error) {
	p, ok := c.profiles[id]
	if !ok {
		return JobProfile{}, &fiterr.NotFoundError{Kind: "job profile", ID: id}
	}
	return p.Clone(), nil
}

// IDs lists the profile ids in lexical order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.profiles))
	for id := range c.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

type catalogFile struct {
	Jobs []catalogJob `mapstructure:"jobs"`
}

type catalogJob struct {
	ID           string              `mapstructure:"id"`
	Title        string              `mapstructure:"title"`
	Competencies []catalogCompetency `mapstructure:"competencies"`
}

type catalogCompetency struct {
	WorkType             string   `mapstructure:"work-type"`
	Weight               string   `mapstructure:"weight"`
	MinScore             float64  `mapstructure:"min-score"`
	OptimalScore         float64  `mapstructure:"optimal-score"`
	Description          string   `mapstructure:"description"`
	InterviewCheckpoints []string `mapstructure:"interview-checkpoints"`
}

// LoadCatalog reads job profiles from a YAML, JSON or TOML file with a
// top-level "jobs" list. Unknown keys are rejected.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read job catalog %s: %w", path, err)
	}

	var file catalogFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &file,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any{"jobs": v.Get("jobs")}); err != nil {
		return nil, fmt.Errorf("decode job catalog %s: %w", path, err)
	}

	if len(file.Jobs) == 0 {
		return nil, fiterr.Validation("jobs", "job catalog %s defines no jobs", path)
	}

	profiles := make([]JobProfile, 0, len(file.Jobs))
	for _, job := range file.Jobs {
		profile := JobProfile{JobID: job.ID, Title: job.Title, Competencies: make([]Competency, 0, len(job.Competencies))}
		for _, c := range job.Competencies {
			code, err := worktype.ParseCode(c.WorkType)
			if err != nil {
				return nil, fmt.Errorf("job profile %q: %w", job.ID, err)
			}
			profile.Competencies = append(profile.Competencies, Competency{
				WorkType:             code,
				Weight:               Weight(c.Weight),
				MinScore:             c.MinScore,
				OptimalScore:         c.OptimalScore,
				Description:          c.Description,
				InterviewCheckpoints: c.InterviewCheckpoints,
			})
		}
		profiles = append(profiles, profile)
	}

	return NewCatalog(profiles...)
}

// DefaultCatalog returns the built-in reference jobs.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProfiles()...)
	if err != nil {
		panic(fmt.Sprintf("jobfit: default catalog: %v", err))
	}
	return c
}

func defaultProfiles() []JobProfile {
	return []JobProfile{
		{
			JobID: "sales-representative",
			Title: "Sales Representative",
			Competencies: []Competency{
				{WorkType: worktype.CA, Weight: WeightCritical, MinScore: 60, OptimalScore: 80,
					Description:          "Builds trust with prospects and represents their needs",
					InterviewCheckpoints: []string{"Ask for a deal won through relationship building", "Probe how they handle rejection"}},
				{WorkType: worktype.EE, Weight: WeightImportant, MinScore: 50, OptimalScore: 75,
					Description:          "Closes quickly and keeps momentum",
					InterviewCheckpoints: []string{"Ask how they keep a pipeline moving"}},
				{WorkType: worktype.EG, Weight: WeightImportant, MinScore: 45, OptimalScore: 70,
					Description:          "Drives toward targets",
					InterviewCheckpoints: []string{"Ask about a missed quota and the recovery plan"}},
				{WorkType: worktype.CH, Weight: WeightPreferred, MinScore: 40, OptimalScore: 65,
					Description:          "Keeps long-term accounts happy",
					InterviewCheckpoints: []string{"Ask how they maintain accounts after the sale"}},
			},
		},
		{
			JobID: "software-engineer",
			Title: "Software Engineer",
			Competencies: []Competency{
				{WorkType: worktype.UR, Weight: WeightCritical, MinScore: 55, OptimalScore: 80,
					Description:          "Refines systems with precision",
					InterviewCheckpoints: []string{"Walk through a refactoring they are proud of", "Ask how they test edge cases"}},
				{WorkType: worktype.SA, Weight: WeightImportant, MinScore: 50, OptimalScore: 75,
					Description:          "Analyses problems from data",
					InterviewCheckpoints: []string{"Ask how they debug a production incident"}},
				{WorkType: worktype.SE, Weight: WeightImportant, MinScore: 45, OptimalScore: 70,
					Description:          "Researches before building",
					InterviewCheckpoints: []string{"Ask how they evaluate a new library"}},
				{WorkType: worktype.AS, Weight: WeightPreferred, MinScore: 40, OptimalScore: 65,
					Description:          "Adapts designs to changing requirements",
					InterviewCheckpoints: []string{"Ask about a design that changed late"}},
			},
		},
		{
			JobID: "project-manager",
			Title: "Project Manager",
			Competencies: []Competency{
				{WorkType: worktype.UM, Weight: WeightCritical, MinScore: 60, OptimalScore: 80,
					Description:          "Coordinates people across teams",
					InterviewCheckpoints: []string{"Ask how they resolved a cross-team blocker", "Ask how they run status meetings"}},
				{WorkType: worktype.AS, Weight: WeightImportant, MinScore: 50, OptimalScore: 75,
					Description:          "Replans when conditions change",
					InterviewCheckpoints: []string{"Ask about a schedule they had to rebuild"}},
				{WorkType: worktype.CA, Weight: WeightImportant, MinScore: 45, OptimalScore: 70,
					Description:          "Represents stakeholders",
					InterviewCheckpoints: []string{"Ask how they balance conflicting stakeholder requests"}},
				{WorkType: worktype.SE, Weight: WeightPreferred, MinScore: 40, OptimalScore: 65,
					Description:          "Plans before executing",
					InterviewCheckpoints: []string{"Ask for an example project plan"}},
			},
		},
		{
			JobID: "customer-support",
			Title: "Customer Support Specialist",
			Competencies: []Competency{
				{WorkType: worktype.CH, Weight: WeightCritical, MinScore: 60, OptimalScore: 80,
					Description:          "Calms and supports customers",
					InterviewCheckpoints: []string{"Role-play an upset customer", "Ask how they recover from a difficult call"}},
				{WorkType: worktype.CA, Weight: WeightImportant, MinScore: 50, OptimalScore: 75,
					Description:          "Advocates for the customer internally",
					InterviewCheckpoints: []string{"Ask how they escalate a customer issue"}},
				{WorkType: worktype.SA, Weight: WeightPreferred, MinScore: 40, OptimalScore: 65,
					Description:          "Follows procedures consistently",
					InterviewCheckpoints: []string{"Ask how they document resolved tickets"}},
			},
		},
		{
			JobID: "business-development",
			Title: "Business Development Lead",
			Competencies: []Competency{
				{WorkType: worktype.AF, Weight: WeightCritical, MinScore: 55, OptimalScore: 80,
					Description:          "Opens new markets independently",
					InterviewCheckpoints: []string{"Ask about a market they opened from scratch", "Ask how they pick targets without guidance"}},
				{WorkType: worktype.EE, Weight: WeightImportant, MinScore: 50, OptimalScore: 75,
					Description:          "Acts decisively on opportunities",
					InterviewCheckpoints: []string{"Ask about a fast call that paid off"}},
				{WorkType: worktype.AS, Weight: WeightImportant, MinScore: 45, OptimalScore: 70,
					Description:          "Sets direction under uncertainty",
					InterviewCheckpoints: []string{"Ask how they set strategy with little data"}},
				{WorkType: worktype.EG, Weight: WeightPreferred, MinScore: 40, OptimalScore: 65,
					Description:          "Pushes partnerships to signature",
					InterviewCheckpoints: []string{"Ask about a stalled negotiation they closed"}},
			},
		},
	}
}
