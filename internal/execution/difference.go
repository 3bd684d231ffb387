package execution

// GapLevel buckets the absolute distance between job and candidate on an axis.
type GapLevel string

const (
	GapCritical    GapLevel = "critical"
	GapSignificant GapLevel = "significant"
	GapModerate    GapLevel = "moderate"
	GapMinimal     GapLevel = "minimal"
)

// Breakpoints on |gap|. Monotonic and non-overlapping; each bucket includes
// its lower bound.
const (
	criticalGap    = 60
	significantGap = 35
	moderateGap    = 15
)

// Difference compares one axis. Gap is job minus applicant, in [-100,100].
type Difference struct {
	Axis           Axis     `json:"axis"`
	JobScore       int      `json:"job_score"`
	ApplicantScore int      `json:"applicant_score"`
	Gap            int      `json:"gap"`
	GapLevel       GapLevel `json:"gap_level"`
}

// ClassifyGap buckets a signed gap by its magnitude.
func ClassifyGap(gap int) GapLevel {
	if gap < 0 {
		gap = -gap
	}

	switch {
	case gap >= criticalGap:
		return GapCritical
	case gap >= significantGap:
		return GapSignificant
	case gap >= moderateGap:
		return GapModerate
	default:
		return GapMinimal
	}
}

// Compare returns one difference per axis in AllAxes order.
func Compare(job, applicant Profile) []Difference {
	diffs := make([]Difference, 0, len(AllAxes))
	for _, axis := range AllAxes {
		j, _ := job.Get(axis)
		a, _ := applicant.Get(axis)
		gap := j.Int() - a.Int()
		diffs = append(diffs, Difference{
			Axis:           axis,
			JobScore:       j.Int(),
			ApplicantScore: a.Int(),
			Gap:            gap,
			GapLevel:       ClassifyGap(gap),
		})
	}
	return diffs
}

// Payload is the structured input handed to the AI-explanation collaborator.
type Payload struct {
	JobID       string       `json:"job_id"`
	JobTitle    string       `json:"job_title"`
	Job         Profile      `json:"job_profile"`
	Applicant   Profile      `json:"applicant_profile"`
	Differences []Difference `json:"differences"`
}

// NewPayload bundles both profiles with their differences.
func NewPayload(jobID, jobTitle string, job, applicant Profile) Payload {
	return Payload{
		JobID:       jobID,
		JobTitle:    jobTitle,
		Job:         job,
		Applicant:   applicant,
		Differences: Compare(job, applicant),
	}
}
