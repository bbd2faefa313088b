package tunnel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrMissingField is wrapped by a ParseError when a required field is absent.
var ErrMissingField = errors.New("missing required field")

// ParseError reports malformed tunnel request input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse tunnel request: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Request holds the connection parameters for a single tunnel.
type Request struct {
	SSHUser       string
	Instance      string
	SSHPrivateKey string
	SSHExtraArgs  string
}

// Destination returns the user@host login identity.
func (r Request) Destination() string {
	return r.SSHUser + "@" + r.Instance
}

type rawRequest struct {
	SSHUser       *string `json:"ssh_user"`
	Instance      *string `json:"instance"`
	SSHPrivateKey *string `json:"ssh_private_key"`
	SSHExtraArgs  *string `json:"ssh_extra_args"`
}

// DecodeRequest reads all of r and decodes it as a tunnel request.
// All four fields are required; unknown fields are ignored.
func DecodeRequest(r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Request{}, &ParseError{Err: fmt.Errorf("read input: %w", err)}
	}
	if !utf8.Valid(data) {
		return Request{}, &ParseError{Err: errors.New("input is not valid UTF-8")}
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, &ParseError{Err: fmt.Errorf("decode json: %w", err)}
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"ssh_user", raw.SSHUser},
		{"instance", raw.Instance},
		{"ssh_private_key", raw.SSHPrivateKey},
		{"ssh_extra_args", raw.SSHExtraArgs},
	}
	for _, f := range fields {
		if f.value == nil {
			return Request{}, &ParseError{Err: fmt.Errorf("%w: %s", ErrMissingField, f.name)}
		}
	}

	return Request{
		SSHUser:       *raw.SSHUser,
		Instance:      *raw.Instance,
		SSHPrivateKey: *raw.SSHPrivateKey,
		SSHExtraArgs:  *raw.SSHExtraArgs,
	}, nil
}
