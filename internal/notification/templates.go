package notification

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const brand = "ShaadiBazaarHub"

var money = message.NewPrinter(language.English)

// BookingAlert is everything the templates need about one committed booking.
type BookingAlert struct {
	BookingID     uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerAddr  string
	ServiceName   string
	ServicePrice  float64
	EventDate     string
	Quantity      int
	DurationHours *int
	Address       *string
	Notes         *string
	ProviderName  string
	ProviderPhone string
	// ProviderWhatsApp is the provider's messaging handle, empty when unset.
	ProviderWhatsApp string
}

func formatPrice(p float64) string {
	return money.Sprintf("₹%.2f", p)
}

func nonEmpty(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return *s, true
}

// RenderProviderAlert is the detailed message sent to the service's provider.
func RenderProviderAlert(a BookingAlert) string {
	duration := "N/A"
	if a.DurationHours != nil && *a.DurationHours > 0 {
		duration = strconv.Itoa(*a.DurationHours) + " hours"
	}

	var b strings.Builder
	b.WriteString("🎉 *New Booking Alert!* 🎉\n\n")
	b.WriteString("📋 *Booking Details:*\n")
	b.WriteString("• Service: " + a.ServiceName + "\n")
	b.WriteString("• Price: " + formatPrice(a.ServicePrice) + "\n")
	b.WriteString("• Quantity: " + strconv.Itoa(a.Quantity) + "\n")
	b.WriteString("• Event Date: " + a.EventDate + "\n")
	b.WriteString("• Duration: " + duration + "\n\n")
	b.WriteString("👤 *Customer Information:*\n")
	b.WriteString("• Name: " + a.CustomerName + "\n")
	b.WriteString("• Mobile: " + a.CustomerPhone + "\n")
	addr := a.CustomerAddr
	if v, ok := nonEmpty(a.Address); ok {
		addr = v
	}
	b.WriteString("• Address: " + addr)
	if notes, ok := nonEmpty(a.Notes); ok {
		b.WriteString("\n\n📝 *Additional Notes:*\n" + notes)
	}
	b.WriteString("\n\n🔗 *Next Steps:*\n")
	b.WriteString("Please contact the customer to confirm the booking and discuss further details.\n\n")
	b.WriteString("---\n*" + brand + " - Your Wedding Partner* 💒")
	return b.String()
}

// RenderAdminAlert is the summary sent to the operator's number. Address,
// duration and provider details are folded into the notes block.
func RenderAdminAlert(a BookingAlert) string {
	var extra []string
	if v, ok := nonEmpty(a.Address); ok {
		extra = append(extra, "Address: "+v)
	}
	if a.DurationHours != nil {
		extra = append(extra, "Duration: "+strconv.Itoa(*a.DurationHours)+" hours")
	}
	if a.ProviderName != "" {
		extra = append(extra, "Provider: "+a.ProviderName)
	}
	if a.ProviderPhone != "" {
		extra = append(extra, "Provider Mobile: "+a.ProviderPhone)
	}
	if notes, ok := nonEmpty(a.Notes); ok {
		extra = append(extra, notes)
	}

	var b strings.Builder
	b.WriteString("📢 *New Booking Received*\n\n")
	b.WriteString("👤 Customer: " + a.CustomerName + "\n")
	b.WriteString("✉️ Email: " + a.CustomerEmail + "\n")
	b.WriteString("📞 Mobile: " + a.CustomerPhone + "\n\n")
	b.WriteString("🧾 Service: " + a.ServiceName + "\n")
	b.WriteString("💰 Price: " + formatPrice(a.ServicePrice) + "\n")
	b.WriteString("📅 Event Date: " + a.EventDate + "\n")
	b.WriteString("🔢 Quantity: " + strconv.Itoa(a.Quantity) + "\n")
	if len(extra) > 0 {
		b.WriteString("📝 Notes: " + strings.Join(extra, "\n") + "\n")
	}
	b.WriteString("\n— " + brand)
	return b.String()
}
