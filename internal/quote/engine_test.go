package quote

import (
	"errors"
	"math"
	"testing"
)

func TestComputeQuote_ShowcaseBaseline(t *testing.T) {
	result, err := ComputeQuote(Config{Tier: TierShowcase, PageCount: 8})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}

	if result.TotalPrice != 690 {
		t.Fatalf("expected total 690, got %d", result.TotalPrice)
	}
	if result.EstimatedDeliveryDays != 7 {
		t.Fatalf("expected 7 delivery days, got %d", result.EstimatedDeliveryDays)
	}
	if result.ExtraPagesCharge != 0 {
		t.Fatalf("expected no extra pages charge, got %d", result.ExtraPagesCharge)
	}
	if result.ExpressDeliveryDays != nil {
		t.Fatal("expected no express delivery days without express")
	}
	if result.CatalogVersion != CatalogVersion {
		t.Fatalf("expected catalog version %s, got %s", CatalogVersion, result.CatalogVersion)
	}
}

func TestComputeQuote_ExtraPagesAndFeature(t *testing.T) {
	result, err := ComputeQuote(Config{
		Tier:             TierShowcase,
		PageCount:        10,
		SelectedFeatures: []string{"seo-advanced"},
	})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}

	if result.ExtraPagesCharge != 130 {
		t.Fatalf("expected 130 extra pages charge (2 × 65), got %d", result.ExtraPagesCharge)
	}
	if result.FeaturesCharge != 249 {
		t.Fatalf("expected 249 features charge, got %d", result.FeaturesCharge)
	}
	if result.TotalPrice != 1069 {
		t.Fatalf("expected total 1069, got %d", result.TotalPrice)
	}
	if result.EstimatedDeliveryDays != 9 {
		t.Fatalf("expected 9 delivery days (7 base + 1 pages + 1 feature), got %d", result.EstimatedDeliveryDays)
	}
}

func TestComputeQuote_ExpressShortRate(t *testing.T) {
	result, err := ComputeQuote(Config{
		Tier:             TierShowcase,
		PageCount:        10,
		SelectedFeatures: []string{"seo-advanced"},
		ExpressDelivery:  true,
	})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}

	if result.ExpressSurchargeRate != 0.30 {
		t.Fatalf("expected 30%% surcharge for a 9-day estimate, got %.2f", result.ExpressSurchargeRate)
	}
	if result.TotalPrice != 1390 {
		t.Fatalf("expected total 1390 (round(1069 × 1.30)), got %d", result.TotalPrice)
	}
	if result.ExpressDeliveryDays == nil {
		t.Fatal("expected express delivery days to be set")
	}
	if *result.ExpressDeliveryDays != ExpressFloorDays {
		t.Fatalf("expected express floor of %d days, got %d", ExpressFloorDays, *result.ExpressDeliveryDays)
	}
}

func TestComputeQuote_ExpressLongRate(t *testing.T) {
	// Ecommerce base is already 21 days, past the 14-day boundary.
	result, err := ComputeQuote(Config{Tier: TierEcommerce, PageCount: 20, ExpressDelivery: true})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}

	if result.ExpressSurchargeRate != 0.40 {
		t.Fatalf("expected 40%% surcharge past 14 days, got %.2f", result.ExpressSurchargeRate)
	}
	want := int64(math.Round(2890 * 1.40))
	if result.TotalPrice != want {
		t.Fatalf("expected total %d, got %d", want, result.TotalPrice)
	}
	if *result.ExpressDeliveryDays != 11 {
		t.Fatalf("expected ceil(21 × 0.5) = 11 express days, got %d", *result.ExpressDeliveryDays)
	}
}

func TestComputeQuote_ExpressBoundaryAtFourteenDays(t *testing.T) {
	// Premium with included pages sits exactly on the boundary: 14 days
	// takes the lower rate.
	result, err := ComputeQuote(Config{Tier: TierPremium, PageCount: 15, ExpressDelivery: true})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if result.EstimatedDeliveryDays != 14 {
		t.Fatalf("expected a 14-day estimate, got %d", result.EstimatedDeliveryDays)
	}
	if result.ExpressSurchargeRate != 0.30 {
		t.Fatalf("expected 30%% at exactly 14 days, got %.2f", result.ExpressSurchargeRate)
	}
}

func TestComputeQuote_PageCountBelowIncludedChargesNothing(t *testing.T) {
	result, err := ComputeQuote(Config{Tier: TierPremium, PageCount: 3})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if result.ExtraPages != 0 || result.ExtraPagesCharge != 0 {
		t.Fatalf("expected zero extra pages below the included count, got %d pages / %d charge",
			result.ExtraPages, result.ExtraPagesCharge)
	}
}

func TestComputeQuote_RecurringFeaturesStayOutOfTotal(t *testing.T) {
	result, err := ComputeQuote(Config{
		Tier:             TierShowcase,
		PageCount:        8,
		SelectedFeatures: []string{"maintenance-premium"},
	})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if result.RecurringMonthly != 99 {
		t.Fatalf("expected 99 recurring monthly, got %d", result.RecurringMonthly)
	}
	if result.FeaturesCharge != 0 {
		t.Fatalf("expected maintenance plan out of one-time charge, got %d", result.FeaturesCharge)
	}
	if result.TotalPrice != 690 {
		t.Fatalf("expected total 690 without maintenance, got %d", result.TotalPrice)
	}
}

func TestComputeQuote_DuplicateFeatureIDsCountOnce(t *testing.T) {
	result, err := ComputeQuote(Config{
		Tier:             TierShowcase,
		PageCount:        8,
		SelectedFeatures: []string{"blog", "blog"},
	})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if result.FeaturesCharge != 349 {
		t.Fatalf("expected the blog feature to count once, got %d", result.FeaturesCharge)
	}
	if len(result.SelectedFeatures) != 1 {
		t.Fatalf("expected one resolved feature, got %d", len(result.SelectedFeatures))
	}
}

func TestComputeQuote_UnknownTier(t *testing.T) {
	_, err := ComputeQuote(Config{Tier: "enterprise", PageCount: 5})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for unknown tier, got %v", err)
	}
	if cfgErr.Field != "tier" {
		t.Fatalf("expected tier field in error, got %q", cfgErr.Field)
	}
}

func TestComputeQuote_UnknownFeature(t *testing.T) {
	_, err := ComputeQuote(Config{
		Tier:             TierShowcase,
		PageCount:        8,
		SelectedFeatures: []string{"hologram"},
	})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for unknown feature, got %v", err)
	}
	if cfgErr.Field != "feature" {
		t.Fatalf("expected feature field in error, got %q", cfgErr.Field)
	}
}

func TestComputeQuote_TotalNeverBelowBasePrice(t *testing.T) {
	configs := []Config{
		{Tier: TierShowcase, PageCount: 1},
		{Tier: TierShowcase, PageCount: 30, SelectedFeatures: []string{"blog", "booking"}},
		{Tier: TierPremium, PageCount: 15, ExpressDelivery: true},
		{Tier: TierEcommerce, PageCount: 50, SelectedFeatures: []string{"multilingual"}, ExpressDelivery: true},
	}

	for _, cfg := range configs {
		result, err := ComputeQuote(cfg)
		if err != nil {
			t.Fatalf("ComputeQuote(%+v) returned error: %v", cfg, err)
		}
		if result.TotalPrice < result.BasePrice {
			t.Fatalf("total %d fell below base price %d for %+v", result.TotalPrice, result.BasePrice, cfg)
		}
	}
}

func TestComputeQuote_DeliveryMonotonicInPagesAndFeatures(t *testing.T) {
	prev := 0
	for pages := 1; pages <= 40; pages++ {
		result, err := ComputeQuote(Config{Tier: TierShowcase, PageCount: pages})
		if err != nil {
			t.Fatalf("ComputeQuote returned error: %v", err)
		}
		if result.EstimatedDeliveryDays < prev {
			t.Fatalf("delivery estimate decreased from %d to %d at %d pages",
				prev, result.EstimatedDeliveryDays, pages)
		}
		prev = result.EstimatedDeliveryDays
	}

	ids := []string{"seo-advanced", "blog", "booking", "multilingual"}
	prev = 0
	for i := 0; i <= len(ids); i++ {
		result, err := ComputeQuote(Config{Tier: TierShowcase, PageCount: 8, SelectedFeatures: ids[:i]})
		if err != nil {
			t.Fatalf("ComputeQuote returned error: %v", err)
		}
		if result.EstimatedDeliveryDays < prev {
			t.Fatalf("delivery estimate decreased to %d with %d features", result.EstimatedDeliveryDays, i)
		}
		prev = result.EstimatedDeliveryDays
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	cfg := Config{
		Tier:             TierEcommerce,
		PageCount:        27,
		SelectedFeatures: []string{"booking", "seo-advanced", "maintenance-basic"},
		ExpressDelivery:  true,
	}

	first, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	second, err := ComputeQuote(cfg)
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}

	if first.TotalPrice != second.TotalPrice ||
		first.EstimatedDeliveryDays != second.EstimatedDeliveryDays ||
		first.ExpressSurchargeRate != second.ExpressSurchargeRate ||
		first.RecurringMonthly != second.RecurringMonthly {
		t.Fatalf("recomputation diverged: %+v vs %+v", first, second)
	}
}
