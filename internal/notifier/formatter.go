package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"PipSignal/internal/model"
	"PipSignal/internal/recorder"
)

var directionLabel = map[model.Direction]string{
	model.DirectionUp:   "HIGHER ⬆️",
	model.DirectionDown: "LOWER ⬇️",
}

var riskEmoji = map[model.RiskLevel]string{
	model.RiskLow:    "🟢",
	model.RiskMedium: "🟡",
	model.RiskHigh:   "🔴",
}

// FormatSignal formats a trading signal into a Telegram message.
func FormatSignal(sig model.TradingSignal) string {
	var b strings.Builder
	places := sig.Instrument.Precision()
	ind := sig.Indicators

	b.WriteString(fmt.Sprintf("🚀 <b>%s ANALYSIS</b>\n\n", sig.Instrument))
	b.WriteString(fmt.Sprintf("📈 <b>Signal:</b> %s\n", directionLabel[sig.Direction()]))
	b.WriteString(fmt.Sprintf("🎯 <b>Confidence:</b> %d%% %s\n", sig.Confidence(), sig.ConfidenceBar))
	b.WriteString(fmt.Sprintf("⚠️ <b>Risk:</b> %s RISK %s\n\n", sig.Risk, riskEmoji[sig.Risk]))

	b.WriteString("💰 <b>Trade setup:</b>\n")
	b.WriteString(fmt.Sprintf("• Entry: %s\n", sig.Levels.Entry.StringFixed(places)))
	b.WriteString(fmt.Sprintf("• Target: %s\n", sig.Levels.Target.StringFixed(places)))
	b.WriteString(fmt.Sprintf("• Stop loss: %s\n\n", sig.Levels.StopLoss.StringFixed(places)))

	b.WriteString("📊 <b>Technical analysis:</b>\n")
	b.WriteString(fmt.Sprintf("• RSI: %.1f (%s)\n", ind.RSI, sig.RSIStatus))
	macd := "BEARISH 📉"
	if ind.MACD.Bullish {
		macd = "BULLISH 📈"
	}
	b.WriteString(fmt.Sprintf("• MACD: %s\n", macd))
	b.WriteString(fmt.Sprintf("• Bollinger: %s\n", formatBand(ind.Bollinger, places)))
	b.WriteString(fmt.Sprintf("• SMA trend: %s\n", sig.SMAStatus))
	b.WriteString(fmt.Sprintf("• Volume: %s\n\n", groupThousands(ind.Volume)))

	b.WriteString(fmt.Sprintf("🕐 Generated: %s\n", sig.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("🆔 Signal ID: #%d\n\n", sig.ID))
	b.WriteString("⚡ Trade with proper risk management.")
	return b.String()
}

func formatBand(bb model.BollingerResult, places int32) string {
	if !bb.HasData() {
		return fmt.Sprintf("%s (no band data)", bb.Status)
	}
	p := int(places)
	return fmt.Sprintf("%s (%.*f / %.*f)", bb.Status, p, bb.Lower, p, bb.Upper)
}

// groupThousands renders 1234567 as 1,234,567.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatWelcome greets a user by first name.
func FormatWelcome(firstName string) string {
	if firstName == "" {
		firstName = "Trader"
	}
	return fmt.Sprintf("🚀 <b>PipSignal</b>\n\nHello %s!\n\n"+
		"📊 Multi-indicator analysis (RSI, MACD, Bollinger, SMA)\n"+
		"🎯 Confidence scoring (60-95%%)\n"+
		"💰 Entry, target and stop-loss levels\n\n"+
		"/signals [PAIR] - get a trading signal\n"+
		"/pairs - supported pairs\n"+
		"/history - your recent signals\n"+
		"/stats - your statistics\n"+
		"/help - all commands", html.EscapeString(firstName))
}

// FormatPairs lists the supported instruments.
func FormatPairs(pairs []string) string {
	var b strings.Builder
	b.WriteString("💱 <b>Supported pairs</b>\n\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("• %s\n", p))
	}
	b.WriteString("\nUsage: /signals [PAIR]\nExample: /signals EURUSD")
	return b.String()
}

// FormatHelp lists every command.
func FormatHelp(pairs []string) string {
	var b strings.Builder
	b.WriteString("🔧 <b>Commands</b>\n\n")
	b.WriteString("/signals [PAIR] - trading signal (default EURUSD)\n")
	b.WriteString("/pairs - supported pairs\n")
	b.WriteString("/history - your last signals\n")
	b.WriteString("/stats - your and system statistics\n")
	b.WriteString("/help - this message\n\n")
	b.WriteString(fmt.Sprintf("💱 %s\n\n", strings.Join(pairs, ", ")))
	b.WriteString("Confidence is reported within 60-95%.")
	return b.String()
}

// FormatUnsupported replies to an unknown pair.
func FormatUnsupported(pair string) string {
	return fmt.Sprintf("❌ <b>Unsupported pair: %s</b>\n\nUse /pairs to see all supported pairs.\nExample: /signals EURUSD",
		html.EscapeString(pair))
}

// FormatUnavailable replies when signal generation failed.
func FormatUnavailable(requestID string) string {
	return fmt.Sprintf("❌ <b>Analysis temporarily unavailable</b>\n\nPlease try again in 30 seconds.\nReference: %s", requestID)
}

// FormatHistory lists a user's recent signals, newest first.
func FormatHistory(entries []recorder.HistoryEntry) string {
	if len(entries) == 0 {
		return "📭 No signals yet. Try /signals EURUSD"
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Your recent signals</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("#%d %s %s %d%% @ %s (%s)\n",
			e.SignalID, e.Instrument, e.Direction, e.Confidence, e.Entry, e.CreatedAt.Format("01-02 15:04")))
	}
	return b.String()
}

// FormatStats renders a user's and the system's statistics.
func FormatStats(user recorder.UserStats, sys recorder.SystemStats) string {
	var b strings.Builder
	b.WriteString("📊 <b>Your statistics</b>\n")
	b.WriteString(fmt.Sprintf("• Signals received: %d\n", user.TotalSignals))
	if user.TotalSignals > 0 {
		b.WriteString(fmt.Sprintf("• Average confidence: %.0f%%\n", user.AverageConfidence))
		b.WriteString(fmt.Sprintf("• Favorite pair: %s\n", user.FavoritePair))
		b.WriteString(fmt.Sprintf("• Last signal: %s\n", user.LastSignalAt.Format(time.DateTime)))
	}
	b.WriteString("\n🤖 <b>System</b>\n")
	b.WriteString(fmt.Sprintf("• Users: %d\n", sys.TotalUsers))
	b.WriteString(fmt.Sprintf("• Signals: %d (today %d)\n", sys.TotalSignals, sys.TodaySignals))
	if sys.TotalSignals > 0 {
		b.WriteString(fmt.Sprintf("• Average confidence: %.0f%%\n", sys.AverageConfidence))
		b.WriteString(fmt.Sprintf("• Most popular pair: %s\n", sys.MostPopularPair))
	}
	return b.String()
}
