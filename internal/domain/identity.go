package domain

// IdentityKind tells which channel a reservation belongs to.
type IdentityKind string

const (
	IdentityNone IdentityKind = ""
	IdentityWeb  IdentityKind = "web"
	IdentityChat IdentityKind = "chat"
)

// Identity is the channel identity a reservation is attributed to: either a
// web account id or a LINE user id. The zero value means "no identity" and is
// rejected by the reservation service.
type Identity struct {
	kind   IdentityKind
	userID int64
	lineID string
}

func WebIdentity(userID int64) Identity {
	return Identity{kind: IdentityWeb, userID: userID}
}

func ChatIdentity(lineUserID string) Identity {
	return Identity{kind: IdentityChat, lineID: lineUserID}
}

func (i Identity) Kind() IdentityKind { return i.kind }

func (i Identity) IsZero() bool { return i.kind == IdentityNone }

// UserID returns the web account id, valid only for IdentityWeb.
func (i Identity) UserID() int64 { return i.userID }

// LineUserID returns the chat platform id, valid only for IdentityChat.
func (i Identity) LineUserID() string { return i.lineID }
