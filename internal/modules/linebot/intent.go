package linebot

import "strings"

type IntentKind string

const (
	IntentStartFlow IntentKind = "start_flow"
	IntentConfirm   IntentKind = "confirm_reservation"
	IntentUnknown   IntentKind = "unknown"
)

// Intent is the classification of one inbound chat message. The interpreter
// is stateless: every message is classified on its own.
type Intent struct {
	Kind IntentKind

	// ReservationID is the raw third token of a confirm command. Empty when
	// the command had no id; validation happens later.
	ReservationID string

	// Text is the original message, kept for the echo reply.
	Text string
}

// ParseIntent classifies a message body, case-insensitively: the exact
// reserve phrase, a "confirm reservation" prefix, or anything else.
func ParseIntent(text string) Intent {
	lower := strings.ToLower(text)

	if lower == "i want to reserve a room right now" {
		return Intent{Kind: IntentStartFlow, Text: text}
	}

	if strings.HasPrefix(lower, "confirm reservation") {
		var id string
		if fields := strings.Fields(text); len(fields) >= 3 {
			id = fields[2]
		}
		return Intent{Kind: IntentConfirm, ReservationID: id, Text: text}
	}

	return Intent{Kind: IntentUnknown, Text: text}
}
