package promo

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var evalNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func welcome10() Code {
	expires := evalNow.Add(24 * time.Hour)
	return Code{
		ID:             1,
		Code:           "WELCOME10",
		DiscountType:   TypePercentage,
		DiscountValue:  dec("10"),
		MinOrderAmount: dec("50"),
		MaxUses:        intPtr(100),
		CurrentUses:    0,
		Active:         true,
		ExpiresAt:      &expires,
	}
}

func save20() Code {
	return Code{
		ID:             2,
		Code:           "SAVE20",
		DiscountType:   TypeFixed,
		DiscountValue:  dec("20"),
		MinOrderAmount: dec("100"),
		MaxUses:        intPtr(50),
		Active:         true,
	}
}

func TestEvaluateWelcome10Applies(t *testing.T) {
	res := Evaluate("WELCOME10", dec("100"), NewSnapshot([]Code{welcome10()}), evalNow)
	if !res.Valid || res.Category != CategoryApplied {
		t.Fatalf("expected applied, got %+v", res)
	}
	if !res.Discount.Equal(dec("10")) {
		t.Fatalf("expected discount 10, got %s", res.Discount)
	}
	if res.Code == nil || res.Code.ID != 1 {
		t.Fatalf("expected matched code to be returned, got %+v", res.Code)
	}
}

func TestEvaluateBelowMinimumReportsThreshold(t *testing.T) {
	res := Evaluate("WELCOME10", dec("40"), NewSnapshot([]Code{welcome10()}), evalNow)
	if res.Valid || res.Category != CategoryBelowMinimum {
		t.Fatalf("expected below minimum, got %+v", res)
	}
	if !strings.Contains(res.Message, "$50") {
		t.Fatalf("message should reference minimum, got %q", res.Message)
	}
	if !res.Discount.IsZero() {
		t.Fatalf("rejected result must carry zero discount, got %s", res.Discount)
	}
}

func TestEvaluateBelowMinimumRegardlessOfOtherFields(t *testing.T) {
	code := welcome10()
	code.MaxUses = nil
	code.ExpiresAt = nil
	code.DiscountType = TypeFixed
	for _, subtotal := range []string{"0", "0.01", "49.99"} {
		res := Evaluate("welcome10", dec(subtotal), NewSnapshot([]Code{code}), evalNow)
		if res.Valid {
			t.Fatalf("subtotal %s below floor must be rejected", subtotal)
		}
	}
}

func TestEvaluateFixedDiscountClampedToSubtotal(t *testing.T) {
	code := save20()
	code.MinOrderAmount = dec("10")
	res := Evaluate("SAVE20", dec("15"), NewSnapshot([]Code{code}), evalNow)
	if !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
	if !res.Discount.Equal(dec("15")) {
		t.Fatalf("expected discount clamped to 15, got %s", res.Discount)
	}
	if total := Total(dec("15"), res.Discount); !total.IsZero() {
		t.Fatalf("expected total 0, got %s", total)
	}
}

func TestEvaluateDiscountNeverExceedsSubtotal(t *testing.T) {
	codes := []Code{
		{Code: "PCT150", DiscountType: TypePercentage, DiscountValue: dec("150"), Active: true},
		{Code: "FIX500", DiscountType: TypeFixed, DiscountValue: dec("500"), Active: true},
		{Code: "PCT33", DiscountType: TypePercentage, DiscountValue: dec("33.33"), Active: true},
	}
	reg := NewSnapshot(codes)
	for _, c := range codes {
		for _, subtotal := range []string{"0", "0.01", "19.99", "100", "1234.56"} {
			res := Evaluate(c.Code, dec(subtotal), reg, evalNow)
			if !res.Valid {
				t.Fatalf("%s @ %s expected valid, got %+v", c.Code, subtotal, res)
			}
			if res.Discount.GreaterThan(dec(subtotal)) || res.Discount.IsNegative() {
				t.Fatalf("%s @ %s discount out of range: %s", c.Code, subtotal, res.Discount)
			}
		}
	}
}

func TestEvaluatePercentageUsesDecimalArithmetic(t *testing.T) {
	code := Code{Code: "PCT15", DiscountType: TypePercentage, DiscountValue: dec("15"), Active: true}
	res := Evaluate("PCT15", dec("19.99"), NewSnapshot([]Code{code}), evalNow)
	if !res.Discount.Equal(dec("3.00")) {
		t.Fatalf("expected 3.00 (2.9985 rounded), got %s", res.Discount)
	}
	res = Evaluate("PCT15", dec("0.30"), NewSnapshot([]Code{code}), evalNow)
	if !res.Discount.Equal(dec("0.05")) {
		t.Fatalf("expected 0.05 (0.045 rounded half up), got %s", res.Discount)
	}
}

func TestEvaluateCaseInsensitive(t *testing.T) {
	reg := NewSnapshot([]Code{save20()})
	upper := Evaluate("SAVE20", dec("150"), reg, evalNow)
	lower := Evaluate("  save20 ", dec("150"), reg, evalNow)
	if upper.Valid != lower.Valid || !upper.Discount.Equal(lower.Discount) || upper.Category != lower.Category {
		t.Fatalf("case variants differ: %+v vs %+v", upper, lower)
	}
}

func TestEvaluateStoredCodeNormalizedOnLookup(t *testing.T) {
	code := save20()
	code.Code = "Save20"
	res := Evaluate("SAVE20", dec("150"), NewSnapshot([]Code{code}), evalNow)
	if !res.Valid {
		t.Fatalf("expected mixed-case stored code to match, got %+v", res)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	code := welcome10()
	reg := NewSnapshot([]Code{code})
	first := Evaluate("WELCOME10", dec("80"), reg, evalNow)
	second := Evaluate("WELCOME10", dec("80"), reg, evalNow)
	if first.Valid != second.Valid || !first.Discount.Equal(second.Discount) || first.Message != second.Message {
		t.Fatalf("evaluation is not idempotent: %+v vs %+v", first, second)
	}
	again, _ := reg.Lookup("WELCOME10")
	if again.CurrentUses != 0 {
		t.Fatalf("evaluation must not mutate usage, got %d", again.CurrentUses)
	}
}

func TestEvaluateExpiryBoundary(t *testing.T) {
	code := welcome10()
	exact := evalNow
	code.ExpiresAt = &exact
	reg := NewSnapshot([]Code{code})

	if res := Evaluate("WELCOME10", dec("100"), reg, evalNow); !res.Valid {
		t.Fatalf("expires_at == now must not be expired, got %+v", res)
	}
	res := Evaluate("WELCOME10", dec("100"), reg, evalNow.Add(time.Microsecond))
	if res.Valid || res.Category != CategoryExpired {
		t.Fatalf("one microsecond later must be expired, got %+v", res)
	}
}

func TestEvaluateUsageBoundary(t *testing.T) {
	code := save20()
	code.MaxUses = intPtr(5)

	code.CurrentUses = 5
	res := Evaluate("SAVE20", dec("150"), NewSnapshot([]Code{code}), evalNow)
	if res.Valid || res.Category != CategoryUsageExceeded {
		t.Fatalf("current_uses == max_uses must be rejected, got %+v", res)
	}

	code.CurrentUses = 4
	res = Evaluate("SAVE20", dec("150"), NewSnapshot([]Code{code}), evalNow)
	if !res.Valid {
		t.Fatalf("current_uses < max_uses must be accepted, got %+v", res)
	}
}

func TestEvaluateUnlimitedUsage(t *testing.T) {
	code := save20()
	code.MaxUses = nil
	code.CurrentUses = 1_000_000
	if res := Evaluate("SAVE20", dec("150"), NewSnapshot([]Code{code}), evalNow); !res.Valid {
		t.Fatalf("nil max_uses must be unlimited, got %+v", res)
	}
}

func TestEvaluateUnknownCode(t *testing.T) {
	res := Evaluate("BOGUS", dec("100"), NewSnapshot([]Code{welcome10(), save20()}), evalNow)
	if res.Valid || res.Category != CategoryNotFound || !res.Discount.IsZero() {
		t.Fatalf("expected not found with zero discount, got %+v", res)
	}
}

func TestEvaluateCheckOrder(t *testing.T) {
	past := evalNow.Add(-time.Hour)
	code := Code{
		Code:           "MULTI",
		DiscountType:   TypeFixed,
		DiscountValue:  dec("5"),
		MinOrderAmount: dec("100"),
		MaxUses:        intPtr(1),
		CurrentUses:    1,
		Active:         false,
		ExpiresAt:      &past,
	}
	steps := []struct {
		mutate func(c *Code)
		want   Category
	}{
		{func(c *Code) {}, CategoryInactive},
		{func(c *Code) { c.Active = true }, CategoryExpired},
		{func(c *Code) { c.ExpiresAt = nil }, CategoryBelowMinimum},
		{func(c *Code) { c.MinOrderAmount = decimal.Zero }, CategoryUsageExceeded},
		{func(c *Code) { c.MaxUses = nil }, CategoryApplied},
	}
	for i, step := range steps {
		step.mutate(&code)
		res := Evaluate("multi", dec("10"), NewSnapshot([]Code{code}), evalNow)
		if res.Category != step.want {
			t.Fatalf("step %d: expected %s, got %s (%s)", i, step.want, res.Category, res.Message)
		}
	}
}

func TestEvaluateEmptyCode(t *testing.T) {
	res := Evaluate("   ", dec("100"), NewSnapshot(nil), evalNow)
	if res.Valid || res.Category != CategoryCodeRequired {
		t.Fatalf("expected code required, got %+v", res)
	}
}

func TestEvaluateUnknownDiscountType(t *testing.T) {
	code := Code{Code: "ODD", DiscountType: "bogo", DiscountValue: dec("10"), Active: true}
	res := Evaluate("ODD", dec("100"), NewSnapshot([]Code{code}), evalNow)
	if res.Valid || res.Category != CategoryInvalid || !res.Discount.IsZero() {
		t.Fatalf("expected invalid with zero discount, got %+v", res)
	}
}

func TestEvaluateWithLookupFunc(t *testing.T) {
	calls := 0
	lookup := LookupFunc(func(normalized string) (*Code, bool) {
		calls++
		if normalized != "SAVE20" {
			return nil, false
		}
		c := save20()
		return &c, true
	})
	res := Evaluate("save20", dec("120"), lookup, evalNow)
	if !res.Valid || !res.Discount.Equal(dec("20")) {
		t.Fatalf("expected fixed 20, got %+v", res)
	}
	if calls != 1 {
		t.Fatalf("expected a single lookup, got %d", calls)
	}
	if res := Evaluate("x", dec("1"), nil, evalNow); res.Category != CategoryNotFound {
		t.Fatalf("nil registry should behave as empty, got %+v", res)
	}
}

func TestTotalFloorsAtZero(t *testing.T) {
	if got := Total(dec("10"), dec("25")); !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := Total(dec("100"), dec("10")); !got.Equal(dec("90")) {
		t.Fatalf("expected 90, got %s", got)
	}
}

func TestChainFirstHitWins(t *testing.T) {
	stale := save20()
	stale.DiscountValue = dec("10")
	fresh := save20()
	inactive := welcome10()
	inactive.Active = false

	var empty *Snapshot
	reg := Chain{empty, NewSnapshot([]Code{stale}), NewSnapshot([]Code{fresh, inactive})}

	res := Evaluate("SAVE20", dec("150"), reg, evalNow)
	if !res.Valid || !res.Discount.Equal(dec("10")) {
		t.Fatalf("expected first registry to win, got %+v", res)
	}
	if res := Evaluate("WELCOME10", dec("150"), reg, evalNow); res.Category != CategoryInactive {
		t.Fatalf("expected lookup to fall through to later registry, got %+v", res)
	}
	if res := Evaluate("NOPE", dec("150"), reg, evalNow); res.Category != CategoryNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}
