package service

import (
	"strings"
	"testing"
)

func TestBuildWhatsAppLink(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		message string
		want    string
	}{
		{"plain digits", "34600111222", "hola", "https://wa.me/34600111222?text=hola"},
		{"formatted number stripped", "+34 600-111-222", "hi", "https://wa.me/34600111222?text=hi"},
		{"message escaped", "34600111222", "ticket LV007 ready", "https://wa.me/34600111222?text=ticket+LV007+ready"},
		{"no digits yields empty", "n/a", "hi", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildWhatsAppLink(tc.phone, tc.message); got != tc.want {
				t.Errorf("BuildWhatsAppLink() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIntakeConfirmationMessageMentionsTicket(t *testing.T) {
	msg := intakeConfirmationMessage("LV007", "Ana")
	if !strings.Contains(msg, "LV007") || !strings.Contains(msg, "Ana") {
		t.Errorf("message %q should mention friendly id and customer name", msg)
	}
}
