package scoring

import (
	"math"
	"strings"
)

type sectionCap struct {
	fragment string
	cap      float64
}

// Ordered cap table; the first case-insensitive substring match on the
// section name wins. Sections matching no entry contribute their raw
// percentage out of 100 directly.
var sectionCaps = []sectionCap{
	{"financial", 50},
	{"sales", 50},
	{"operational", 35},
	{"efficiency", 35},
	{"behavioral", 15},
	{"soft skills", 15},
}

// Aggregate computes the overall performance result for one appraisal from
// its responses grouped by section. It returns nil when there are no
// responses at all: the appraisal is not yet computable, which is not an
// error condition.
func Aggregate(sections []SectionGroup, noteworthy string, policy RatingPolicy) *PerformanceResult {
	if policy == nil {
		policy = ManagerOverridesEmployee
	}

	total := 0
	for _, section := range sections {
		total += len(section.Responses)
	}
	if total == 0 {
		return nil
	}

	fragments := noteworthyFragments(noteworthy)

	result := &PerformanceResult{}
	for _, section := range sections {
		score := scoreSection(section, policy)
		if matchesAnyFragment(section.SectionName, fragments) {
			score.IsNoteworthy = true
			result.NoteworthyBonus += math.Min(score.CappedContribution*noteworthyBonusRate, noteworthyBonusCap)
		}
		result.BaseScore += score.CappedContribution
		result.SectionScores = append(result.SectionScores, score)
	}

	// A single 10-point cap across all qualifying sections, not per section.
	result.NoteworthyBonus = math.Min(result.NoteworthyBonus, noteworthyBonusCap)
	result.OverallScore = round2(math.Min(100, result.BaseScore+result.NoteworthyBonus))
	result.PerformanceBand = BandFor(result.OverallScore)
	return result
}

func scoreSection(section SectionGroup, policy RatingPolicy) SectionScore {
	var weighted, maxPossible float64
	for _, response := range section.Responses {
		weighted += policy(response) * response.QuestionWeight
		maxPossible += RatingScaleMax * response.QuestionWeight
	}

	raw := 0.0
	if maxPossible > 0 {
		raw = weighted / maxPossible
	}

	return SectionScore{
		SectionID:          section.SectionID,
		SectionName:        section.SectionName,
		RawPercentage:      raw,
		CappedContribution: cappedContribution(section.SectionName, raw),
	}
}

func cappedContribution(sectionName string, rawPercentage float64) float64 {
	name := strings.ToLower(sectionName)
	for _, entry := range sectionCaps {
		if strings.Contains(name, entry.fragment) {
			return math.Min(rawPercentage*100, entry.cap)
		}
	}
	return math.Min(rawPercentage*100, 100)
}

// noteworthyFragments splits the appraisal's free-text noteworthy field into
// lowercase fragments. Matching is by substring against the section name,
// preserving the behavior of the appraisal form (which stores a
// comma-separated list of section-name fragments).
func noteworthyFragments(noteworthy string) []string {
	var fragments []string
	for _, part := range strings.Split(noteworthy, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			fragments = append(fragments, part)
		}
	}
	return fragments
}

func matchesAnyFragment(sectionName string, fragments []string) bool {
	name := strings.ToLower(sectionName)
	for _, fragment := range fragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

// BandFor maps an overall score to its qualitative band.
func BandFor(score float64) string {
	switch {
	case score >= 91:
		return BandExceptional
	case score >= 81:
		return BandExcellent
	case score >= 71:
		return BandVeryGood
	case score >= 61:
		return BandGood
	case score >= 51:
		return BandFair
	default:
		return BandPoor
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
