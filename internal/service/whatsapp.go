package service

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildWhatsAppLink constructs the deep link that opens the external
// messaging client with a pre-filled message. The application never calls a
// messaging API; it only hands this URL to the browser.
func BuildWhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// intakeConfirmationMessage is the text pre-filled after a successful intake.
func intakeConfirmationMessage(friendlyID, customerName string) string {
	return fmt.Sprintf(
		"Hello %s, your repair ticket %s has been registered. We will contact you as soon as a technician starts working on it.",
		customerName, friendlyID)
}
