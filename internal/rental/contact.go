package rental

import (
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"net/url"
	"strings"
)

// NormalizePhone keeps the digits of a phone number and drops a leading
// international "00".
func NormalizePhone(raw string) string {
	cleaned := util.DigitsOnly(raw)

	return strings.TrimPrefix(cleaned, "00")
}

// WhatsAppURL builds a wa.me chat link; ok is false when the number has no digits.
func WhatsAppURL(phone, message string) (link string, ok bool) {
	number := NormalizePhone(phone)
	if number == "" {
		return "", false
	}

	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, text), true
}

// InquiryMessage is the prefilled WhatsApp text a guest sends about a unit.
func InquiryMessage(u Unit, guestName, guestPhone string) string {
	return fmt.Sprintf("مرحبًا، أريد الاستفسار عن %s (%s). اسمي %s ورقمي %s", u.Title, u.UnitId, guestName, guestPhone)
}
