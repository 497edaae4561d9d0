// Package token obfuscates Telegram user ids for use in mini-app URLs.
//
// A token is the base64 of the id's decimal text. It is not a signature:
// anyone can mint a token for any id, so a decoded id must not be trusted
// as proof of identity.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDecode is returned when a token cannot be turned back into a user id.
var ErrDecode = errors.New("invalid user token")

// Encode returns the URL-safe token for id.
func Encode(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// Decode recovers the user id from tok. Padded tokens in the standard
// alphabet are accepted too.
func Decode(tok string) (int64, error) {
	raw, err := decodeBase64(strings.TrimRight(tok, "="))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrDecode)
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if id < 0 {
		return 0, fmt.Errorf("%w: negative id %d", ErrDecode, id)
	}
	return id, nil
}

func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	if raw, stdErr := base64.RawStdEncoding.DecodeString(s); stdErr == nil {
		return raw, nil
	}
	return nil, err
}
