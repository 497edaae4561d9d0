// Package miniapp builds links into the character mini-app and parses the
// data it sends back to the bot.
package miniapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Actions sent by the mini-app.
const (
	ActionSelectCharacter = "select_character"
)

var (
	ErrMalformedPayload = errors.New("malformed web app payload")
	ErrNotObject        = errors.New("web app payload is not a JSON object")
	ErrMissingAction    = errors.New("web app payload has no action")
	ErrMissingField     = errors.New("web app payload is missing a required field")
	ErrUnknownAction    = errors.New("unknown web app action")
)

// Payload is the JSON document posted by the mini-app through
// Telegram.WebApp.sendData.
type Payload struct {
	Action string
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// ParsePayload decodes data and reads its action. Only text that is not
// JSON yields ErrMalformedPayload. A missing, null or non-string action
// yields ErrMissingAction together with the decoded payload.
func ParsePayload(data string) (Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		if !json.Valid([]byte(data)) {
			return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return Payload{}, ErrNotObject
	}
	if fields == nil {
		return Payload{}, ErrNotObject
	}

	p := Payload{raw: json.RawMessage(data), fields: fields}
	var action string
	if err := json.Unmarshal(fields["action"], &action); err != nil || strings.TrimSpace(action) == "" {
		return p, ErrMissingAction
	}
	p.Action = action
	return p, nil
}

// Indent returns the payload pretty-printed for logs.
func (p Payload) Indent() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.raw, "", "  "); err != nil {
		return string(p.raw)
	}
	return buf.String()
}

// Raw returns the payload as received.
func (p Payload) Raw() json.RawMessage {
	return p.raw
}

// SelectCharacter is the select_character action.
type SelectCharacter struct {
	CharacterID          FlexID `json:"character_id"`
	CharacterName        string `json:"character_name"`
	CharacterDescription string `json:"character_description"`
	CharacterAvatar      string `json:"character_avatar"`
	TelegramID           FlexID `json:"telegram_id"`
	Username             string `json:"username"`
	FirstName            string `json:"first_name"`
}

// SelectCharacter decodes p as a select_character action.
func (p Payload) SelectCharacter() (SelectCharacter, error) {
	if p.Action != ActionSelectCharacter {
		return SelectCharacter{}, fmt.Errorf("%w: %q", ErrUnknownAction, p.Action)
	}

	var sc SelectCharacter
	if err := json.Unmarshal(p.raw, &sc); err != nil {
		return SelectCharacter{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// Required keys must be present; their values may be empty or null.
	for _, key := range []string{"character_id", "character_name", "telegram_id"} {
		if _, ok := p.fields[key]; !ok {
			return SelectCharacter{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}
	return sc, nil
}

// FlexID is an identifier the frontend may send either as a JSON number or
// as a string.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string { return string(id) }
