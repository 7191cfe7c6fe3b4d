/**
 * @description
 * The pricing engine: turns a project configuration into a priced quote
 * with a delivery estimate. Pure arithmetic over the static catalog —
 * no I/O, no hidden state, so identical input always yields an identical
 * quote apart from the issuance timestamp.
 */
package quote

import (
	"fmt"
	"math"
	"time"
)

const (
	// PerExtraPageRate is charged per page beyond the tier's included count.
	// One global rate across all tiers.
	PerExtraPageRate = 65

	// ExpressFloorDays is the shortest delivery the studio will promise.
	ExpressFloorDays = 5

	// ExpressFactor compresses the standard estimate when express is booked.
	ExpressFactor = 0.5

	// Express surcharge rates, split at expressRateBoundaryDays.
	expressRateShort        = 0.30
	expressRateLong         = 0.40
	expressRateBoundaryDays = 14
)

// Config is a visitor's project configuration, built from the calculator
// wizard or a quote-request payload.
type Config struct {
	Tier             Tier     `json:"tier"`
	PageCount        int      `json:"page_count"`
	SelectedFeatures []string `json:"selected_features"`
	ExpressDelivery  bool     `json:"express_delivery"`
}

// ConfigurationError reports a tier or feature id that does not exist in
// the active catalog. Callers surface it as a validation failure; it is
// never silently defaulted.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s %q in catalog %s", e.Field, e.Value, CatalogVersion)
}

// Result is a computed quote. It is derived data, recomputed on every
// request, and never the persisted source of truth.
type Result struct {
	Tier                  Tier      `json:"tier"`
	TierDisplayName       string    `json:"tier_display_name"`
	BasePrice             int64     `json:"base_price"`
	ExtraPages            int       `json:"extra_pages"`
	ExtraPagesCharge      int64     `json:"extra_pages_charge"`
	FeaturesCharge        int64     `json:"features_charge"`
	RecurringMonthly      int64     `json:"recurring_monthly"`
	SelectedFeatures      []Feature `json:"selected_features"`
	EstimatedDeliveryDays int       `json:"estimated_delivery_days"`
	ExpressDelivery       bool      `json:"express_delivery"`
	ExpressSurchargeRate  float64   `json:"express_surcharge_rate,omitempty"`
	ExpressDeliveryDays   *int      `json:"express_delivery_days,omitempty"`
	TotalPrice            int64     `json:"total_price"`
	CatalogVersion        string    `json:"catalog_version"`
	IssuedAt              time.Time `json:"issued_at"`
}

// ComputeQuote prices a configuration against the active catalog.
// The only failure mode is a tier or feature id missing from the catalog;
// page counts below the tier's included pages simply charge nothing extra.
func ComputeQuote(cfg Config) (*Result, error) {
	tier, ok := TierInfoFor(cfg.Tier)
	if !ok {
		return nil, &ConfigurationError{Field: "tier", Value: string(cfg.Tier)}
	}

	extraPages := cfg.PageCount - tier.IncludedPages
	if extraPages < 0 {
		extraPages = 0
	}
	extraPagesCharge := int64(extraPages) * PerExtraPageRate

	var (
		featuresCharge   int64
		recurringMonthly int64
		featureDays      int
		selected         []Feature
		seen             = make(map[string]bool, len(cfg.SelectedFeatures))
	)
	for _, id := range cfg.SelectedFeatures {
		if seen[id] {
			continue
		}
		seen[id] = true

		f, ok := FeatureByID(id)
		if !ok {
			return nil, &ConfigurationError{Field: "feature", Value: id}
		}
		if f.Recurring() {
			recurringMonthly += f.Price
		} else {
			featuresCharge += f.Price
		}
		featureDays += f.DeliveryDaysAdded
		selected = append(selected, f)
	}

	// Each pair of extra pages adds a production day.
	deliveryDays := tier.BaseDeliveryDays + ceilDiv(extraPages, 2) + featureDays

	subtotal := tier.BasePrice + extraPagesCharge + featuresCharge

	result := &Result{
		Tier:                  tier.Tier,
		TierDisplayName:       tier.DisplayName,
		BasePrice:             tier.BasePrice,
		ExtraPages:            extraPages,
		ExtraPagesCharge:      extraPagesCharge,
		FeaturesCharge:        featuresCharge,
		RecurringMonthly:      recurringMonthly,
		SelectedFeatures:      selected,
		EstimatedDeliveryDays: deliveryDays,
		ExpressDelivery:       cfg.ExpressDelivery,
		TotalPrice:            subtotal,
		CatalogVersion:        CatalogVersion,
		IssuedAt:              time.Now().UTC(),
	}

	if cfg.ExpressDelivery {
		rate := expressRateShort
		if deliveryDays > expressRateBoundaryDays {
			rate = expressRateLong
		}
		expressDays := int(math.Ceil(float64(deliveryDays) * ExpressFactor))
		if expressDays < ExpressFloorDays {
			expressDays = ExpressFloorDays
		}
		result.ExpressSurchargeRate = rate
		result.ExpressDeliveryDays = &expressDays
		result.TotalPrice = int64(math.Round(float64(subtotal) * (1 + rate)))
	}

	return result, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
