package scoring

import "testing"

func ratingPtr(v float64) *float64 {
	return &v
}

func section(id, name string, responses ...QuestionResponse) SectionGroup {
	return SectionGroup{SectionID: id, SectionName: name, SectionWeight: 1, Responses: responses}
}

// response builds a manager-rated response with the given rating and weight.
func response(rating, weight float64) QuestionResponse {
	return QuestionResponse{QuestionID: "q", ManagerRating: ratingPtr(rating), QuestionWeight: weight}
}

func TestAggregateNilOnNoResponses(t *testing.T) {
	if got := Aggregate(nil, "", nil); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
	if got := Aggregate([]SectionGroup{section("s1", "Financial Performance")}, "", nil); got != nil {
		t.Fatalf("expected nil when sections carry no responses, got %+v", got)
	}
}

func TestFinancialCapAtFullScore(t *testing.T) {
	result := Aggregate([]SectionGroup{
		section("s1", "Financial Performance", response(5, 1), response(5, 3)),
	}, "", nil)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.SectionScores[0].RawPercentage != 1 {
		t.Fatalf("expected raw percentage 1, got %v", result.SectionScores[0].RawPercentage)
	}
	if result.SectionScores[0].CappedContribution != 50 {
		t.Fatalf("expected capped contribution 50, got %v", result.SectionScores[0].CappedContribution)
	}
}

func TestCapTableMatching(t *testing.T) {
	cases := []struct {
		name string
		want float64
	}{
		{"Financial Performance", 50},
		{"Sales Targets", 50},
		{"Operational Excellence", 35},
		{"Team Efficiency", 35},
		{"Behavioral Review", 15},
		{"Soft Skills Assessment", 15},
		{"Innovation", 100},
	}
	for _, tc := range cases {
		result := Aggregate([]SectionGroup{section("s", tc.name, response(5, 1))}, "", nil)
		if result.SectionScores[0].CappedContribution != tc.want {
			t.Fatalf("%s: expected contribution %v, got %v", tc.name, tc.want, result.SectionScores[0].CappedContribution)
		}
	}
}

func TestManagerRatingOverridesEmployee(t *testing.T) {
	resp := QuestionResponse{
		EmployeeRating: ratingPtr(5),
		ManagerRating:  ratingPtr(3),
		QuestionWeight: 1,
	}
	result := Aggregate([]SectionGroup{section("s1", "Innovation", resp)}, "", nil)
	if result.OverallScore != 60 {
		t.Fatalf("expected manager rating to win (60), got %v", result.OverallScore)
	}
}

func TestMissingRatingsCountZero(t *testing.T) {
	resp := QuestionResponse{QuestionWeight: 2}
	result := Aggregate([]SectionGroup{section("s1", "Innovation", resp, response(5, 1))}, "", nil)
	// 5/15 weighted points.
	if result.SectionScores[0].RawPercentage < 0.333 || result.SectionScores[0].RawPercentage > 0.334 {
		t.Fatalf("expected raw percentage ~1/3, got %v", result.SectionScores[0].RawPercentage)
	}
}

func TestZeroWeightSectionScoresZero(t *testing.T) {
	result := Aggregate([]SectionGroup{
		section("s1", "Operational Excellence", response(5, 0), response(4, 0)),
	}, "", nil)
	if result.SectionScores[0].RawPercentage != 0 {
		t.Fatalf("expected raw percentage 0 for zero-weight section, got %v", result.SectionScores[0].RawPercentage)
	}
	if result.OverallScore != 0 {
		t.Fatalf("expected overall 0, got %v", result.OverallScore)
	}
}

func TestScoreBounds(t *testing.T) {
	// Many uncapped sections at full marks would exceed 100 without the clamp.
	sections := []SectionGroup{
		section("s1", "Innovation", response(5, 1)),
		section("s2", "Quality", response(5, 1)),
		section("s3", "Delivery", response(5, 1)),
	}
	result := Aggregate(sections, "", nil)
	if result.OverallScore != 100 {
		t.Fatalf("expected overall clamped to 100, got %v", result.OverallScore)
	}
}

func TestNoteworthyBonusCappedAcrossSections(t *testing.T) {
	// Two uncapped sections at 100% would each yield a 10-point bonus alone;
	// the summed bonus must still clamp to 10.
	sections := []SectionGroup{
		section("s1", "Alpha Delivery", response(5, 1)),
		section("s2", "Beta Delivery", response(5, 1)),
	}
	result := Aggregate(sections, "delivery", nil)
	if !result.SectionScores[0].IsNoteworthy || !result.SectionScores[1].IsNoteworthy {
		t.Fatalf("expected both sections noteworthy: %+v", result.SectionScores)
	}
	if result.NoteworthyBonus != 10 {
		t.Fatalf("expected bonus clamped to 10, got %v", result.NoteworthyBonus)
	}
}

func TestNoteworthyFragmentsCommaSplit(t *testing.T) {
	sections := []SectionGroup{
		section("s1", "Financial Performance", response(4, 1)),
		section("s2", "Behavioral Review", response(5, 1)),
	}
	result := Aggregate(sections, " behavioral , FINANCIAL ", nil)
	for _, score := range result.SectionScores {
		if !score.IsNoteworthy {
			t.Fatalf("expected %s noteworthy", score.SectionName)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{91.0, BandExceptional},
		{90.99, BandExcellent},
		{81.0, BandExcellent},
		{71.0, BandVeryGood},
		{61.0, BandGood},
		{51.0, BandFair},
		{50.99, BandPoor},
		{0, BandPoor},
	}
	for _, tc := range cases {
		if got := BandFor(tc.score); got != tc.want {
			t.Fatalf("score %v: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Financial at 80% contributes 40; Behavioral at 100% contributes 15 and
	// is noteworthy, adding min(15*0.10, 10) = 1.5.
	sections := []SectionGroup{
		section("s1", "Financial Performance", response(4, 1)),
		section("s2", "Behavioral Review", response(5, 1)),
	}
	result := Aggregate(sections, "behavioral", nil)
	if result.BaseScore != 55 {
		t.Fatalf("expected base score 55, got %v", result.BaseScore)
	}
	if result.NoteworthyBonus != 1.5 {
		t.Fatalf("expected bonus 1.5, got %v", result.NoteworthyBonus)
	}
	if result.OverallScore != 56.5 {
		t.Fatalf("expected overall 56.5, got %v", result.OverallScore)
	}
	if result.PerformanceBand != BandFair {
		t.Fatalf("expected band %s, got %s", BandFair, result.PerformanceBand)
	}
}
