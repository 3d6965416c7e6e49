package scoring

// Scoring constants for a round
const (
	// PointsPerCorrectAnswer is the base award for a correct answer
	PointsPerCorrectAnswer = 5
	// HintPenalty is deducted from the award per hint issued
	HintPenalty = 1
	// MaxHints is the number of hints available per round
	MaxHints = 4
)

// Service computes round awards from the hint count.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Award returns the points a correct answer earns after hintsGiven
// hints have been issued this round. Never negative.
func (s *Service) Award(hintsGiven int) int {
	points := PointsPerCorrectAnswer - hintsGiven*HintPenalty
	if points < 0 {
		return 0
	}
	return points
}

// PotentialAfterNextHint returns the award shown alongside the hint
// being issued: what a correct answer earns once this hint counts
// against the solver. hintsGiven is the count before the hint.
func (s *Service) PotentialAfterNextHint(hintsGiven int) int {
	points := PointsPerCorrectAnswer - (hintsGiven+1)*HintPenalty
	if points < 0 {
		return 0
	}
	return points
}

// HintsRemaining returns how many hints are still available.
func (s *Service) HintsRemaining(hintsGiven int) int {
	remaining := MaxHints - hintsGiven
	if remaining < 0 {
		return 0
	}
	return remaining
}
