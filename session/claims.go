package session

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claim keys used by the backend's access tokens.
const (
	claimEmail     = "email"
	claimUsername  = "username"
	claimRole      = "rol"
	claimSubjectID = "usuario_id"
)

// ErrMalformedToken reports a token whose payload segment cannot be decoded.
// The session layer recovers by purging stored tokens and going anonymous;
// the error itself never reaches UI code.
var ErrMalformedToken = errors.New("session: malformed token")

// Identity is the set of facts projected out of an access token. An identity
// is either fully populated from a token that decoded, or absent entirely;
// there is no partially authenticated form.
type Identity struct {
	// Name is the display name: the email claim when present, otherwise the
	// username claim.
	Name      string
	Email     string
	Username  string
	Role      string
	SubjectID string
	// Extra carries every claim the projection does not recognise, verbatim.
	Extra map[string]string
}

// DecodeClaims extracts the claim set embedded in a compact JWT without
// verifying the signature. Verification is the issuing backend's job; the
// client only needs the claims for display and role-based routing.
//
// Tokens arrive with the standard base64url padding stripped, so the payload
// segment is re-padded before decoding.
func DecodeClaims(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: got %d segment(s), want header.payload.signature", ErrMalformedToken, len(parts))
	}
	raw, err := base64.URLEncoding.DecodeString(padBase64(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment: %v", ErrMalformedToken, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var claims jwt.MapClaims
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: payload JSON: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}
	return claims, nil
}

// padBase64 restores the '=' padding token producers strip. A segment whose
// length mod 4 is 1 is left alone and fails base64 decoding.
func padBase64(s string) string {
	switch len(s) % 4 {
	case 2:
		return s + "=="
	case 3:
		return s + "="
	}
	return s
}

// IdentityFromClaims projects the backend's claim contract into an Identity:
// email doubles as the display name, username fills in when email is absent,
// and unrecognised claims are kept verbatim in Extra.
func IdentityFromClaims(claims jwt.MapClaims) Identity {
	id := Identity{Extra: make(map[string]string)}
	if v, ok := claims[claimEmail]; ok {
		id.Email = claimString(v)
		id.Name = id.Email
	}
	if v, ok := claims[claimUsername]; ok {
		id.Username = claimString(v)
		if _, hasEmail := claims[claimEmail]; !hasEmail {
			id.Name = id.Username
		}
	}
	if v, ok := claims[claimRole]; ok {
		id.Role = claimString(v)
	}
	if v, ok := claims[claimSubjectID]; ok {
		id.SubjectID = claimString(v)
	}
	for k, v := range claims {
		switch k {
		case claimEmail, claimUsername, claimRole, claimSubjectID:
		default:
			id.Extra[k] = claimString(v)
		}
	}
	return id
}

func claimString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
