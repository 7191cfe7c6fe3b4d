/**
 * @description
 * Turns a computed quote into an ordered line-item breakdown for PDFs and
 * human-readable summaries.
 */
package quote

import "fmt"

// LineItem is one row of a quote breakdown.
type LineItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// LineItems returns the one-time breakdown in a fixed order: base price,
// extra pages if any, each selected one-time feature in selection order,
// then the express surcharge if applied. The amounts always sum exactly
// to the quote's TotalPrice; the surcharge row absorbs rounding.
func LineItems(r *Result) []LineItem {
	items := []LineItem{
		{Label: r.TierDisplayName, Amount: r.BasePrice},
	}

	if r.ExtraPages > 0 {
		items = append(items, LineItem{
			Label:  fmt.Sprintf("Additional pages × %d", r.ExtraPages),
			Amount: r.ExtraPagesCharge,
		})
	}

	subtotal := r.BasePrice + r.ExtraPagesCharge
	for _, f := range r.SelectedFeatures {
		if f.Recurring() {
			continue
		}
		items = append(items, LineItem{Label: f.DisplayName, Amount: f.Price})
		subtotal += f.Price
	}

	if r.ExpressDelivery {
		items = append(items, LineItem{
			Label:  fmt.Sprintf("Express delivery (+%d%%)", int(r.ExpressSurchargeRate*100)),
			Amount: r.TotalPrice - subtotal,
		})
	}

	return items
}

// RecurringItems returns the monthly items (maintenance plans) selected on
// the quote. They are billed separately and are never part of TotalPrice.
func RecurringItems(r *Result) []LineItem {
	var items []LineItem
	for _, f := range r.SelectedFeatures {
		if f.Recurring() {
			items = append(items, LineItem{Label: f.DisplayName, Amount: f.Price})
		}
	}
	return items
}
