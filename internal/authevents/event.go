// Package authevents carries sign-in, sign-out and token refresh
// notifications from the upstream auth provider to the session controller.
package authevents

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/models"
)

type Kind int

const (
	SignedIn Kind = iota + 1
	SignedOut
	TokenRefreshed
)

func (k Kind) String() string {
	switch k {
	case SignedIn:
		return "SIGNED_IN"
	case SignedOut:
		return "SIGNED_OUT"
	case TokenRefreshed:
		return "TOKEN_REFRESHED"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a wire event name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "SIGNED_IN":
		return SignedIn, nil
	case "SIGNED_OUT":
		return SignedOut, nil
	case "TOKEN_REFRESHED":
		return TokenRefreshed, nil
	}
	return 0, fmt.Errorf("%w: unknown auth event %q", common.ErrDataFormat, s)
}

// Event is one auth notification. Identity is set when the provider already
// resolved the user; otherwise Token carries the raw access token.
type Event struct {
	Kind     Kind
	Identity *models.Identity
	Token    string
}

// message is the JSON form of an Event on the wire.
type message struct {
	Event       string `json:"event"`
	AccessToken string `json:"access_token,omitempty"`
}

// Decode parses a wire message.
func Decode(body []byte) (Event, error) {
	var m message
	if err := json.Unmarshal(body, &m); err != nil {
		return Event{}, fmt.Errorf("%w: %w", common.ErrDataFormat, err)
	}
	kind, err := ParseKind(m.Event)
	if err != nil {
		return Event{}, err
	}
	if kind != SignedOut && m.AccessToken == "" {
		return Event{}, fmt.Errorf("%w: %s without access_token", common.ErrDataFormat, m.Event)
	}
	return Event{Kind: kind, Token: m.AccessToken}, nil
}

// Encode renders e as a wire message. Identity is not transmitted.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(message{Event: e.Kind.String(), AccessToken: e.Token})
}
