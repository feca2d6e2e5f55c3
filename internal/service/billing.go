package service

import (
	"fmt"
	"strings"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// InvoiceTotals is the billable breakdown for a ticket. Every render surface
// (screen preview, print view, PDF data) consumes this one computation.
type InvoiceTotals struct {
	Subtotal  float64
	IVARate   float64
	IVAAmount float64
	Total     float64
}

// ComputeInvoiceTotals derives subtotal, tax and total from the stored costs.
// Tax is computed at render time and never folded into the persisted total.
func ComputeInvoiceTotals(laborCost, partsCost float64, includeIVA bool, ivaRate float64) InvoiceTotals {
	subtotal := laborCost + partsCost
	totals := InvoiceTotals{
		Subtotal: subtotal,
		Total:    subtotal,
	}
	if includeIVA {
		totals.IVARate = ivaRate
		totals.IVAAmount = subtotal * ivaRate / 100
		totals.Total = subtotal + totals.IVAAmount
	}
	return totals
}

// ResolveIVARate picks the rate captured on the ticket when present, falling
// back to the company-wide configured rate. An explicit zero on the ticket is
// a pinned exemption and wins over the configured rate; only negative values
// count as unset.
func ResolveIVARate(ticket *domain.Ticket, settings *domain.CompanySettings) float64 {
	if ticket != nil && ticket.AppliedIVAPercentage != nil && *ticket.AppliedIVAPercentage >= 0 {
		return *ticket.AppliedIVAPercentage
	}
	return settings.EffectiveIVAPercentage()
}

// FriendlyTicketID builds the human-readable label: category prefix plus the
// zero-padded sequential number ("LV007"). Without a prefix it falls back to
// the last six characters of the opaque id, upper-cased.
func FriendlyTicketID(categoryPrefix string, ticketNumber int, ticketID string) string {
	prefix := strings.TrimSpace(categoryPrefix)
	if prefix != "" {
		return fmt.Sprintf("%s%03d", prefix, ticketNumber)
	}
	suffix := ticketID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return strings.ToUpper(suffix)
}

// FormatMoney renders an amount to two decimals with the configured currency
// symbol, e.g. "€ 181.50".
func FormatMoney(amount float64, currencySymbol string) string {
	if currencySymbol == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s %.2f", currencySymbol, amount)
}
