/**
 * @description
 * Static pricing reference data: service tiers and optional features.
 *
 * The tier and feature tables are versioned together under a single
 * CatalogVersion stamp. The public /catalog endpoint serves this exact data,
 * so the browser-side calculator and the server always price from the same
 * tables; a client that submits a stale version is rejected rather than
 * silently repriced.
 */
package quote

// CatalogVersion identifies the current tier/feature table revision.
// Bump it whenever a price, included-page count or delivery figure changes.
const CatalogVersion = "2025-06"

// Tier is one of the three fixed service levels.
type Tier string

const (
	TierShowcase  Tier = "showcase"
	TierPremium   Tier = "premium"
	TierEcommerce Tier = "ecommerce"
)

// TierInfo holds the reference data for a base tier.
type TierInfo struct {
	Tier             Tier   `json:"tier"`
	DisplayName      string `json:"display_name"`
	BasePrice        int64  `json:"base_price"`
	IncludedPages    int    `json:"included_pages"`
	BaseDeliveryDays int    `json:"base_delivery_days"`
}

// FeatureCategory groups features for display. Only the maintenance
// category has a pricing effect: its features bill monthly and are kept
// out of the one-time total.
type FeatureCategory string

const (
	CategoryContent       FeatureCategory = "content"
	CategoryMarketing     FeatureCategory = "marketing"
	CategoryFunctionality FeatureCategory = "functionality"
	CategoryMaintenance   FeatureCategory = "maintenance"
)

// Feature is an optional add-on with a price and a delivery-day penalty.
type Feature struct {
	ID                string          `json:"id"`
	DisplayName       string          `json:"display_name"`
	Price             int64           `json:"price"`
	Category          FeatureCategory `json:"category"`
	DeliveryDaysAdded int             `json:"delivery_days_added"`
}

// Recurring reports whether the feature bills monthly instead of one-time.
func (f Feature) Recurring() bool {
	return f.Category == CategoryMaintenance
}

var tiers = map[Tier]TierInfo{
	TierShowcase:  {Tier: TierShowcase, DisplayName: "Showcase website", BasePrice: 690, IncludedPages: 8, BaseDeliveryDays: 7},
	TierPremium:   {Tier: TierPremium, DisplayName: "Premium website", BasePrice: 1490, IncludedPages: 15, BaseDeliveryDays: 14},
	TierEcommerce: {Tier: TierEcommerce, DisplayName: "Online store", BasePrice: 2890, IncludedPages: 20, BaseDeliveryDays: 21},
}

// tierOrder fixes the display order for Tiers().
var tierOrder = []Tier{TierShowcase, TierPremium, TierEcommerce}

// Complex integrations (booking, CRM, multilingual) carry the higher
// day penalties; the algorithm never special-cases them, the data does.
var features = []Feature{
	{ID: "blog", DisplayName: "Blog module", Price: 349, Category: CategoryContent, DeliveryDaysAdded: 2},
	{ID: "copywriting", DisplayName: "Professional copywriting", Price: 399, Category: CategoryContent, DeliveryDaysAdded: 3},
	{ID: "logo-design", DisplayName: "Logo design", Price: 299, Category: CategoryContent, DeliveryDaysAdded: 2},
	{ID: "seo-advanced", DisplayName: "Advanced SEO setup", Price: 249, Category: CategoryMarketing, DeliveryDaysAdded: 1},
	{ID: "analytics", DisplayName: "Analytics & tracking", Price: 149, Category: CategoryMarketing, DeliveryDaysAdded: 1},
	{ID: "newsletter", DisplayName: "Newsletter integration", Price: 199, Category: CategoryMarketing, DeliveryDaysAdded: 1},
	{ID: "multilingual", DisplayName: "Multilingual support", Price: 449, Category: CategoryFunctionality, DeliveryDaysAdded: 4},
	{ID: "booking", DisplayName: "Online booking", Price: 549, Category: CategoryFunctionality, DeliveryDaysAdded: 5},
	{ID: "crm-integration", DisplayName: "CRM integration", Price: 649, Category: CategoryFunctionality, DeliveryDaysAdded: 5},
	{ID: "member-area", DisplayName: "Member area", Price: 499, Category: CategoryFunctionality, DeliveryDaysAdded: 4},
	{ID: "maintenance-basic", DisplayName: "Basic maintenance plan", Price: 49, Category: CategoryMaintenance, DeliveryDaysAdded: 0},
	{ID: "maintenance-premium", DisplayName: "Premium maintenance plan", Price: 99, Category: CategoryMaintenance, DeliveryDaysAdded: 0},
}

var featureIndex = func() map[string]Feature {
	idx := make(map[string]Feature, len(features))
	for _, f := range features {
		idx[f.ID] = f
	}
	return idx
}()

// Tiers returns all tiers in display order.
func Tiers() []TierInfo {
	out := make([]TierInfo, 0, len(tierOrder))
	for _, t := range tierOrder {
		out = append(out, tiers[t])
	}
	return out
}

// Features returns the full feature catalog in display order.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// TierInfoFor looks up the reference data for a tier.
func TierInfoFor(t Tier) (TierInfo, bool) {
	info, ok := tiers[t]
	return info, ok
}

// FeatureByID looks up a feature in the catalog.
func FeatureByID(id string) (Feature, bool) {
	f, ok := featureIndex[id]
	return f, ok
}
