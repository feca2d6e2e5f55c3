package service

import (
	"math"
	"testing"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeInvoiceTotals(t *testing.T) {
	tests := []struct {
		name       string
		labor      float64
		parts      float64
		includeIVA bool
		rate       float64
		subtotal   float64
		ivaAmount  float64
		total      float64
	}{
		{"with iva at 21", 100, 50, true, 21, 150, 31.5, 181.5},
		{"without iva", 100, 50, false, 21, 150, 0, 150},
		{"zero costs", 0, 0, true, 21, 0, 0, 0},
		{"custom rate", 200, 0, true, 10, 200, 20, 220},
		{"labor only", 80, 0, true, 21, 80, 16.8, 96.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			totals := ComputeInvoiceTotals(tc.labor, tc.parts, tc.includeIVA, tc.rate)
			if !almostEqual(totals.Subtotal, tc.subtotal) {
				t.Errorf("subtotal = %v, want %v", totals.Subtotal, tc.subtotal)
			}
			if !almostEqual(totals.IVAAmount, tc.ivaAmount) {
				t.Errorf("iva amount = %v, want %v", totals.IVAAmount, tc.ivaAmount)
			}
			if !almostEqual(totals.Total, tc.total) {
				t.Errorf("total = %v, want %v", totals.Total, tc.total)
			}
		})
	}
}

func TestComputeInvoiceTotalsExcludedRateIgnored(t *testing.T) {
	totals := ComputeInvoiceTotals(100, 0, false, 21)
	if totals.IVARate != 0 {
		t.Errorf("rate = %v, want 0 when iva excluded", totals.IVARate)
	}
}

func TestResolveIVARate(t *testing.T) {
	rate := 10.5
	zero := 0.0
	negative := -1.0

	tests := []struct {
		name     string
		ticket   *domain.Ticket
		settings *domain.CompanySettings
		want     float64
	}{
		{"ticket rate wins", &domain.Ticket{AppliedIVAPercentage: &rate}, &domain.CompanySettings{IVAPercentage: 21}, 10.5},
		{"pinned zero rate is an exemption", &domain.Ticket{AppliedIVAPercentage: &zero}, &domain.CompanySettings{IVAPercentage: 17}, 0},
		{"negative ticket rate falls back", &domain.Ticket{AppliedIVAPercentage: &negative}, &domain.CompanySettings{IVAPercentage: 17}, 17},
		{"nil ticket rate falls back", &domain.Ticket{}, &domain.CompanySettings{IVAPercentage: 17}, 17},
		{"unset settings use default", &domain.Ticket{}, &domain.CompanySettings{}, domain.DefaultIVAPercentage},
		{"nil settings use default", &domain.Ticket{}, nil, domain.DefaultIVAPercentage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveIVARate(tc.ticket, tc.settings); !almostEqual(got, tc.want) {
				t.Errorf("ResolveIVARate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFriendlyTicketID(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		number   int
		ticketID string
		want     string
	}{
		{"prefix padded", "LV", 7, "ignored", "LV007"},
		{"prefix three digits", "NEV", 1, "ignored", "NEV001"},
		{"number beyond padding", "LV", 1234, "ignored", "LV1234"},
		{"no prefix uses id suffix", "", 7, "550e8400-e29b-41d4-a716-446655440000", "440000"},
		{"no prefix short id", "", 7, "ab12", "AB12"},
		{"blank prefix trimmed", "  ", 7, "550e8400-e29b-41d4-a716-44665544cafe", "44CAFE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FriendlyTicketID(tc.prefix, tc.number, tc.ticketID); got != tc.want {
				t.Errorf("FriendlyTicketID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(181.5, "€"); got != "€ 181.50" {
		t.Errorf("FormatMoney() = %q, want %q", got, "€ 181.50")
	}
	if got := FormatMoney(10, ""); got != "10.00" {
		t.Errorf("FormatMoney() = %q, want %q", got, "10.00")
	}
}
