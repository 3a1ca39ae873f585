package notifier

import (
	"fmt"
	"strings"
	"time"

	"QuoteChart/internal/calculator"
	"QuoteChart/internal/model"
)

const dayFormat = "2006-01-02"

// FormatOverview formats the latest quote of every symbol into a Telegram message.
func FormatOverview(rows []model.QuoteRow) string {
	var b strings.Builder

	var asOf time.Time
	for _, r := range rows {
		if ts := r.Quote.Timestamp(); ts.After(asOf) {
			asOf = ts
		}
	}
	b.WriteString("📊 <b>QuoteChart overview</b>")
	if !asOf.IsZero() {
		b.WriteString(fmt.Sprintf(" | %s", asOf.Format(dayFormat)))
	}
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString("No quotes available.\n")
		return b.String()
	}
	for _, r := range rows {
		icon := "🟢"
		if !r.IsUp() {
			icon = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s  %s", icon, r.Quote.Symbol, r.CloseText(), r.ChangeText()))
		if r.Quote.Volume != nil {
			b.WriteString(fmt.Sprintf("  Vol %s", calculator.FormatVolume(*r.Quote.Volume)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSnapshot formats a chart snapshot and its signal. sig may be nil.
func FormatSnapshot(snap *model.ChartSnapshot, sig *model.Signal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %s\n", snap.Symbol, snap.Window))
	if len(snap.Quotes) == 0 {
		b.WriteString("\nNo quotes in this window.\n")
		return b.String()
	}

	first := snap.Quotes[0].Timestamp()
	last := snap.Quotes[len(snap.Quotes)-1].Timestamp()
	b.WriteString(fmt.Sprintf("%s – %s (%d sessions)\n\n", first.Format(dayFormat), last.Format(dayFormat), len(snap.Quotes)))

	row := model.QuoteRow{Quote: snap.Quotes[len(snap.Quotes)-1]}
	b.WriteString(fmt.Sprintf("Close: %s  %s\n", row.CloseText(), row.ChangeText()))
	b.WriteString(fmt.Sprintf("Axis: %.2f – %.2f\n", snap.PriceRange.Min, snap.PriceRange.Max))

	ind := snap.Indicators
	b.WriteString(fmt.Sprintf("SMA%d: %s | EMA%d: %s | RSI%d: %s\n",
		ind.SMAPeriod, lastText(ind.SMA, "%.2f"),
		ind.EMAPeriod, lastText(ind.EMA, "%.2f"),
		ind.RSIPeriod, lastText(ind.RSI, "%.1f")))

	if sig == nil {
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n🧭 <b>Signal:</b> zone %s, trend %s\n", sig.Zone, sig.Trend))
	for _, f := range sig.Factors {
		b.WriteString(fmt.Sprintf("  %s(%s): %+.1f (×%.2f) = %+.3f\n",
			f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Total: %+.3f\n", sig.TotalScore))

	if sig.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", sig.WarningMsg))
	}
	return b.String()
}

// FormatZoneAlert announces that a watched symbol moved into a new RSI zone.
func FormatZoneAlert(sig *model.Signal, previous model.RSIZone) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>%s</b> RSI zone %s → %s\n", sig.Symbol, previous, sig.Zone))
	b.WriteString(fmt.Sprintf("Close %.2f | RSI %.1f | trend %s\n", sig.LastClose, sig.RSI, sig.Trend))
	if sig.WarningMsg != "" {
		b.WriteString(sig.WarningMsg + "\n")
	}
	return b.String()
}

// FormatWatchlist lists the watched symbols.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "👀 Watchlist is empty. Add one with /watch SYMBOL"
	}
	return fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n%s", len(symbols), strings.Join(symbols, ", "))
}

func lastText(points []model.IndicatorPoint, format string) string {
	v, ok := model.Last(points)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}
