package attendance

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MultiplierFor returns the escalation multiplier for a violation that is the
// occurrenceCount-th in the rule's lookback window. Tiers are matched from the
// highest threshold down; the first tier whose threshold is <= the count wins.
// A nil or inactive rule, or a count below every tier, yields 1.0.
func MultiplierFor(rule *EscalationRule, occurrenceCount int) float64 {
	if rule == nil || !rule.IsActive {
		return 1.0
	}

	tiers := make([]EscalationTier, len(rule.Tiers))
	copy(tiers, rule.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].OccurrenceCountThreshold > tiers[j].OccurrenceCountThreshold
	})

	for _, tier := range tiers {
		if occurrenceCount >= tier.OccurrenceCountThreshold {
			return tier.Multiplier
		}
	}
	return 1.0
}

// ChargeAmount applies an escalation multiplier to a base charge amount,
// rounded to cents.
func ChargeAmount(base decimal.Decimal, multiplier float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(multiplier)).Round(2)
}

type EscalationStore interface {
	ActiveEscalationRule(ctx context.Context, violationType string) (*EscalationRule, error)
	CountChargesSince(ctx context.Context, employeeID, chargeType string, since time.Time) (int, error)
}

// Engine computes the escalation multiplier for one employee's violation by
// counting prior charges of the same type within the rule's lookback window.
type Engine struct {
	store EscalationStore
}

func NewEngine(store EscalationStore) *Engine {
	return &Engine{store: store}
}

// Escalation looks up the active rule for violationType and derives the
// multiplier. Every failure path falls back to multiplier 1.0: an
// undercharged violation is preferable to an overcharge computed from
// corrupted or unreachable state.
func (e *Engine) Escalation(ctx context.Context, employeeID, violationType string, now time.Time) Escalation {
	rule, err := e.store.ActiveEscalationRule(ctx, violationType)
	if err != nil {
		slog.Warn("escalation rule lookup failed, charging without escalation",
			"employeeId", employeeID, "violationType", violationType, "err", err)
		return Escalation{Multiplier: 1.0, OccurrenceCount: 1}
	}
	if rule == nil {
		return Escalation{Multiplier: 1.0, OccurrenceCount: 1}
	}

	lookback := now.AddDate(0, 0, -rule.LookbackPeriodDays)
	prior, err := e.store.CountChargesSince(ctx, employeeID, violationType, lookback)
	if err != nil {
		slog.Warn("prior charge count failed, charging without escalation",
			"employeeId", employeeID, "violationType", violationType, "err", err)
		return Escalation{Multiplier: 1.0, OccurrenceCount: 1}
	}

	// The current violation counts toward its own tier.
	count := prior + 1
	return Escalation{Multiplier: MultiplierFor(rule, count), OccurrenceCount: count}
}
