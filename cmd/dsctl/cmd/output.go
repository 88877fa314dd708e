package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/dealsense/internal/engine"
	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const titleWidth = 40

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func discount(rate *int) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *rate)
}

func match(m *float64) string {
	if m == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *m)
}

func printDealsTable(w io.Writer, items []domain.DealListItem) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tDISCOUNT\tMERCHANT\tTRUST\tMATCH\tRISK\n")
	for i := range items {
		it := &items[i]
		risk := "-"
		if it.RiskNote != nil {
			risk = *it.RiskNote
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			it.DealID,
			normalize.Truncate(it.Title, titleWidth),
			normalize.Won(it.PriceCurrent),
			discount(it.DiscountRate),
			it.Merchant,
			it.Score.Trust,
			match(it.Score.Match),
			risk,
		)
	}
	return tw.finish()
}

func printNotes(w io.Writer, notes []string) error {
	for _, n := range notes {
		if _, err := fmt.Fprintln(w, "* "+n); err != nil {
			return err
		}
	}
	return nil
}

func printDealDetail(w io.Writer, d *domain.DealDetail) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", d.DealID)
	tw.writef("Title:\t%s\n", d.Title)
	tw.writef("Price:\t%s\n", normalize.Won(d.PriceCurrent))
	if d.PriceOriginal != nil {
		tw.writef("Original:\t%s (%s off)\n", normalize.Won(*d.PriceOriginal), discount(d.DiscountRate))
	}
	tw.writef("Source:\t%s\n", d.Source)
	tw.writef("Merchant:\t%s\n", d.Merchant)
	tw.writef("Category:\t%s\n", d.Category)
	tw.writef("Posted:\t%s\n", d.PostedAt.Format("2006-01-02 15:04"))
	tw.writef("Trust:\t%.2f\n", d.Score.Trust)
	tw.writef("Popularity:\t%.2f\n", d.Score.Popularity)
	if d.RiskNote != nil {
		tw.writef("Risk:\t%s\n", *d.RiskNote)
	}
	tw.writef("Shipping:\t%s\n", shipping(d.PriceComponents))
	if len(d.Conditions) > 0 {
		tw.writef("Conditions:\t%s\n", strings.Join(d.Conditions, ", "))
	}
	if len(d.Observations) > 0 {
		tw.writef("Observations:\t%s\n", strings.Join(d.Observations, ", "))
	}
	tw.writef("URL:\t%s\n", d.URL)
	return tw.finish()
}

func shipping(pc domain.PriceComponents) string {
	switch {
	case pc.ShippingIncluded:
		return "included"
	case pc.ShippingFee != nil:
		return normalize.Won(*pc.ShippingFee)
	default:
		return "unknown"
	}
}

func printVerification(w io.Writer, v *domain.Verification) error {
	tw := newTabWriter(w)
	tw.writef("Trust:\t%.2f\n", v.TrustScore)
	tw.writef("Risk level:\t%s\n", v.RiskLevel)
	for _, warn := range v.Warnings {
		tw.writef("Warning:\t%s\n", warn)
	}
	for _, n := range v.Notes {
		tw.writef("Note:\t%s\n", n)
	}
	return tw.finish()
}

func printProfilesTable(w io.Writer, profiles []engine.ProfileView) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSUMMARY\tUPDATED\n")
	for i := range profiles {
		p := &profiles[i]
		tw.writef("%s\t%s\t%s\n",
			p.ID,
			p.Summary,
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
