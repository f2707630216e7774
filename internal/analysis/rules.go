package analysis

import "github.com/sprite-ai/consentlens/internal/model"

// Policy flags a summarizer may raise.
const (
	FlagThirdPartySharing = "third_party_sharing"
	FlagMarketing         = "marketing"
	FlagLongTermRetention = "long_term_retention"
)

// KnownFlags lists every flag a summarizer may return.
var KnownFlags = []string{FlagThirdPartySharing, FlagMarketing, FlagLongTermRetention}

// Rules maps a permission id or policy flag to its risk weight.
type Rules map[string]int

// DefaultRules returns the built-in weights.
func DefaultRules() Rules {
	return Rules{
		"location":   3,
		"contacts":   2,
		"camera":     2,
		"microphone": 2,
		"storage":    1,
		"sms":        2,
		"call_logs":  2,
		"calendar":   1,

		FlagThirdPartySharing: 3,
		FlagMarketing:         1,
		FlagLongTermRetention: 2,
	}
}

// Merge returns a copy of r with the weights in override applied on top.
func (r Rules) Merge(override map[string]int) Rules {
	out := make(Rules, len(r)+len(override))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Score sums the weights of known permissions and flags. Reasons lists each
// contributing id, permissions first, in input order.
func (r Rules) Score(permissions, flags []string) (score int, level model.RiskLevel, reasons []string) {
	reasons = []string{}
	for _, ids := range [][]string{permissions, flags} {
		for _, id := range ids {
			if w, ok := r[id]; ok {
				score += w
				reasons = append(reasons, id)
			}
		}
	}
	return score, LevelFor(score), reasons
}

// LevelFor buckets a score: up to 3 is Low, up to 6 is Medium, above is High.
func LevelFor(score int) model.RiskLevel {
	switch {
	case score <= 3:
		return model.RiskLow
	case score <= 6:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
