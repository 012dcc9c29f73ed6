package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/promo"
	"github.com/kickslife/storefront/internal/repository"
)

func TestPromoValidateDoesNotConsumeUsage(t *testing.T) {
	fx := setupStoreTest(t)
	row := seedPromo(t, fx.db, models.PromoCode{
		Code:           "WELCOME10",
		DiscountType:   promo.TypePercentage,
		DiscountValue:  models.MustMoney("10"),
		MinOrderAmount: models.MustMoney("50"),
		MaxUses:        intPtr(100),
		Active:         true,
	})

	for i := 0; i < 3; i++ {
		result, err := fx.promos.Validate(context.Background(), "welcome10", dec("120"))
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !result.Valid || !result.Discount.Equal(dec("12")) {
			t.Fatalf("unexpected result: %+v", result)
		}
	}
	if got := reloadPromo(t, fx.db, row.ID).CurrentUses; got != 0 {
		t.Fatalf("preview must not consume usage, current_uses=%d", got)
	}
}

func TestPromoValidateRejections(t *testing.T) {
	fx := setupStoreTest(t)
	past := time.Now().Add(-time.Hour)
	seedPromo(t, fx.db, models.PromoCode{Code: "SAVE20", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("20"), MinOrderAmount: models.MustMoney("100"), Active: true})
	seedPromo(t, fx.db, models.PromoCode{Code: "OLD", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("5"), ExpiresAt: &past, Active: true})

	cases := []struct {
		code     string
		amount   string
		category promo.Category
		message  string
	}{
		{code: "NOPE", amount: "200", category: promo.CategoryNotFound, message: "Promo code not found"},
		{code: "SAVE20", amount: "99.99", category: promo.CategoryBelowMinimum, message: "Minimum order amount of $100.00 required"},
		{code: "old", amount: "200", category: promo.CategoryExpired, message: "Promo code has expired"},
	}
	for _, tc := range cases {
		result, err := fx.promos.Validate(context.Background(), tc.code, dec(tc.amount))
		if err != nil {
			t.Fatalf("validate %s failed: %v", tc.code, err)
		}
		if result.Valid || result.Category != tc.category || result.Message != tc.message {
			t.Fatalf("code %s: unexpected result %+v", tc.code, result)
		}
	}

	if _, err := fx.promos.Validate(context.Background(), "SAVE20", dec("-1")); !errors.Is(err, ErrPromoOrderAmountBad) {
		t.Fatalf("expected ErrPromoOrderAmountBad, got %v", err)
	}
}

func TestPromoCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	fx := setupStoreTest(t)
	created, err := fx.promos.Create(PromoCodeInput{
		Code:          "  spring25 ",
		DiscountType:  "Percentage",
		DiscountValue: dec("25"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Code != "SPRING25" || created.DiscountType != promo.TypePercentage || !created.Active {
		t.Fatalf("unexpected promo: %+v", created)
	}

	if _, err := fx.promos.Create(PromoCodeInput{Code: "Spring25", DiscountType: "fixed", DiscountValue: dec("1")}); !errors.Is(err, ErrPromoCodeExists) {
		t.Fatalf("expected ErrPromoCodeExists, got %v", err)
	}

	inactive := false
	disabled, err := fx.promos.Create(PromoCodeInput{Code: "PAUSED", DiscountType: "fixed", DiscountValue: dec("5"), Active: &inactive})
	if err != nil {
		t.Fatalf("create inactive failed: %v", err)
	}
	if reloadPromo(t, fx.db, disabled.ID).Active {
		t.Fatalf("expected inactive promo to persist active=false")
	}
}

func TestPromoCreateValidation(t *testing.T) {
	fx := setupStoreTest(t)
	cases := []struct {
		input PromoCodeInput
		want  error
	}{
		{input: PromoCodeInput{Code: " ", DiscountType: "fixed"}, want: ErrPromoCodeRequired},
		{input: PromoCodeInput{Code: "X", DiscountType: "bogo"}, want: ErrPromoDiscountTypeBad},
		{input: PromoCodeInput{Code: "X", DiscountType: "fixed", DiscountValue: dec("-1")}, want: ErrPromoDiscountValueBad},
		{input: PromoCodeInput{Code: "X", DiscountType: "fixed", MinOrderAmount: dec("-5")}, want: ErrPromoMinAmountBad},
		{input: PromoCodeInput{Code: "X", DiscountType: "fixed", MaxUses: intPtr(0)}, want: ErrPromoMaxUsesBad},
	}
	for _, tc := range cases {
		if _, err := fx.promos.Create(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: want %v, got %v", tc.input, tc.want, err)
		}
	}
}

func TestPromoUpdateKeepsUsageCounter(t *testing.T) {
	fx := setupStoreTest(t)
	row := seedPromo(t, fx.db, models.PromoCode{
		Code:          "NEWCUSTOMER",
		DiscountType:  promo.TypePercentage,
		DiscountValue: models.MustMoney("15"),
		MaxUses:       intPtr(200),
		CurrentUses:   7,
		Active:        true,
	})

	inactive := false
	newCode := "newcustomer15"
	updated, err := fx.promos.Update(row.ID, PromoCodePatch{Code: &newCode, Active: &inactive, ClearMaxUses: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Code != "NEWCUSTOMER15" || updated.Active || updated.MaxUses != nil {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	stored := reloadPromo(t, fx.db, row.ID)
	if stored.CurrentUses != 7 {
		t.Fatalf("current_uses must survive update, got %d", stored.CurrentUses)
	}
	if stored.Active || stored.MaxUses != nil {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestPromoDeleteMissing(t *testing.T) {
	fx := setupStoreTest(t)
	if err := fx.promos.Delete(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	row := seedPromo(t, fx.db, models.PromoCode{Code: "GONE", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("1"), Active: true})
	if err := fx.promos.Delete(row.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := fx.promos.GetByID(row.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted promo to be gone, got %v", err)
	}
}

func TestPromoAmountPrecision(t *testing.T) {
	fx := setupStoreTest(t)
	_, err := fx.promos.Create(PromoCodeInput{
		Code:          "ODDCENTS",
		DiscountType:  promo.TypeFixed,
		DiscountValue: dec("12.345"),
	})
	if !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected ErrAmountPrecision on create, got %v", err)
	}

	row := seedPromo(t, fx.db, models.PromoCode{Code: "SAVE20", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("20"), MinOrderAmount: models.MustMoney("80"), Active: true})
	minimum := dec("80.001")
	if _, err := fx.promos.Update(row.ID, PromoCodePatch{MinOrderAmount: &minimum}); !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected ErrAmountPrecision on update, got %v", err)
	}
	if got := reloadPromo(t, fx.db, row.ID).MinOrderAmount.Decimal; !got.Equal(dec("80")) {
		t.Fatalf("rejected patch must not persist, min_order_amount=%s", got)
	}

	result, err := fx.promos.Validate(context.Background(), "SAVE20", dec("79.995"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Valid || result.Category != promo.CategoryBelowMinimum {
		t.Fatalf("sub-cent amount under minimum must be rejected, got %+v", result)
	}
}

func TestPromoValidateServesActiveSnapshot(t *testing.T) {
	fx := setupStoreTest(t)
	promos := NewPromoService(repository.NewPromoCodeRepository(fx.db), &config.PromoConfig{CacheTTLSeconds: 60}, nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	promos.now = func() time.Time { return now }

	row := seedPromo(t, fx.db, models.PromoCode{Code: "SAVE20", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("20"), MinOrderAmount: models.MustMoney("100"), Active: true})
	retired := seedPromo(t, fx.db, models.PromoCode{Code: "RETIRED", DiscountType: promo.TypeFixed, DiscountValue: models.MustMoney("5"), Active: true})
	if err := fx.db.Model(&models.PromoCode{}).Where("id = ?", retired.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	result, err := promos.Validate(context.Background(), "save20", dec("150"))
	if err != nil || !result.Valid || !result.Discount.Equal(dec("20")) {
		t.Fatalf("unexpected result: %+v err=%v", result, err)
	}
	if promos.snapshot == nil || promos.snapshot.Len() != 1 {
		t.Fatalf("expected snapshot with one active code, got %+v", promos.snapshot)
	}

	// 绕过服务直接改库，快照有效期内仍返回旧值
	if err := fx.db.Model(&models.PromoCode{}).Where("id = ?", row.ID).Update("discount_value", "30").Error; err != nil {
		t.Fatalf("update discount failed: %v", err)
	}
	result, _ = promos.Validate(context.Background(), "SAVE20", dec("150"))
	if !result.Discount.Equal(dec("20")) {
		t.Fatalf("expected snapshot discount 20, got %s", result.Discount)
	}

	inactive, err := promos.Validate(context.Background(), "RETIRED", dec("150"))
	if err != nil {
		t.Fatalf("validate retired failed: %v", err)
	}
	if inactive.Category != promo.CategoryInactive {
		t.Fatalf("codes outside the snapshot must fall back to storage, got %+v", inactive)
	}

	promos.Invalidate("SAVE20")
	result, _ = promos.Validate(context.Background(), "SAVE20", dec("150"))
	if !result.Discount.Equal(dec("30")) {
		t.Fatalf("expected fresh discount 30 after invalidate, got %s", result.Discount)
	}

	if err := fx.db.Model(&models.PromoCode{}).Where("id = ?", row.ID).Update("discount_value", "35").Error; err != nil {
		t.Fatalf("update discount failed: %v", err)
	}
	now = now.Add(61 * time.Second)
	result, _ = promos.Validate(context.Background(), "SAVE20", dec("150"))
	if !result.Discount.Equal(dec("35")) {
		t.Fatalf("expected snapshot rebuilt after ttl, got %s", result.Discount)
	}
}
