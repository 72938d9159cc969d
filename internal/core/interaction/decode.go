package interaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/net/http/bind"
)

// ErrMalformed marks envelopes that failed structural decoding
var ErrMalformed = errors.New("malformed interaction")

// wireInteraction is the subset of the platform payload this service reads
type wireInteraction struct {
	ID            string      `json:"id,omitempty"             validate:"omitempty,snowflake"`
	ApplicationID string      `json:"application_id,omitempty" validate:"omitempty,snowflake"`
	Type          Kind        `json:"type"                     validate:"required"`
	Token         string      `json:"token,omitempty"`
	GuildID       string      `json:"guild_id,omitempty"       validate:"omitempty,snowflake"`
	ChannelID     string      `json:"channel_id,omitempty"     validate:"omitempty,snowflake"`
	Member        *wireMember `json:"member,omitempty"`
	User          *wireUser   `json:"user,omitempty"`
	Locale        string      `json:"locale,omitempty"`
	Data          *wireData   `json:"data,omitempty"`
}

type wireMember struct {
	User *wireUser `json:"user,omitempty"`
}

type wireUser struct {
	ID string `json:"id" validate:"omitempty,snowflake"`
}

type wireData struct {
	ID      string       `json:"id,omitempty"   validate:"omitempty,snowflake"`
	Name    string       `json:"name,omitempty"`
	Type    int          `json:"type,omitempty"`
	Options []wireOption `json:"options,omitempty" validate:"unique=Name,dive"`
}

type wireOption struct {
	Name    string          `json:"name"    validate:"required"`
	Type    OptionType      `json:"type"    validate:"required"`
	Value   json.RawMessage `json:"value"`
	Focused bool            `json:"focused,omitempty"`
}

// Decode parses a raw body into an Envelope
// unknown fields are ignored, unknown kinds decode to Other,
// every structural violation is a perr JSON error wrapping ErrMalformed
func Decode(body []byte) (Envelope, error) {
	w, err := bind.Decode[wireInteraction](body)
	if err != nil {
		return nil, malformed(err)
	}

	meta := Meta{
		ID:            w.ID,
		ApplicationID: w.ApplicationID,
		Type:          w.Type,
		Token:         w.Token,
		GuildID:       w.GuildID,
		ChannelID:     w.ChannelID,
		Locale:        w.Locale,
	}
	switch {
	case w.Member != nil && w.Member.User != nil:
		meta.UserID = w.Member.User.ID
	case w.User != nil:
		meta.UserID = w.User.ID
	}

	switch w.Type {
	case KindPing:
		return Ping{Meta: meta}, nil
	case KindCommand, KindAutocomplete:
		inv, err := decodeInvocation(w.Data)
		if err != nil {
			return nil, err
		}
		if w.Type == KindCommand {
			return Command{Meta: meta, Invocation: inv}, nil
		}
		return Autocomplete{Meta: meta, Invocation: inv}, nil
	default:
		return Other{Meta: meta}, nil
	}
}

func decodeInvocation(d *wireData) (Invocation, error) {
	if d == nil || strings.TrimSpace(d.Name) == "" {
		return Invocation{}, malformed(perr.WithField(perr.New(perr.ErrorCodeValidation, "command name is required"), "name"))
	}
	inv := Invocation{ID: d.ID, Name: d.Name}
	if len(d.Options) > 0 {
		inv.Options = make([]Option, 0, len(d.Options))
	}
	for _, o := range d.Options {
		v, err := decodeValue(o)
		if err != nil {
			return Invocation{}, malformed(perr.WithField(err, o.Name))
		}
		inv.Options = append(inv.Options, Option{Name: o.Name, Value: v})
	}
	return inv, nil
}

func decodeValue(o wireOption) (Value, error) {
	switch o.Type {
	case OptionString, OptionBoolean, OptionInteger, OptionNumber:
	default:
		return nil, perr.Newf(perr.ErrorCodeJSON, "option %q has unsupported type %d", o.Name, o.Type)
	}

	raw := bytes.TrimSpace(o.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, perr.Newf(perr.ErrorCodeJSON, "option %q has no value", o.Name)
	}

	if o.Focused {
		switch o.Type {
		case OptionString, OptionInteger, OptionNumber:
		default:
			return nil, perr.Newf(perr.ErrorCodeJSON, "option %q of type %d cannot be focused", o.Name, o.Type)
		}
		// partial input arrives as a string, numeric kinds may also send a bare number
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				return nil, typeErr(o, err)
			}
			s = n.String()
		}
		return Focused{Text: s, Of: o.Type}, nil
	}

	switch o.Type {
	case OptionString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, typeErr(o, err)
		}
		return String(s), nil
	case OptionBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, typeErr(o, err)
		}
		return Bool(b), nil
	case OptionInteger:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, typeErr(o, err)
		}
		return Integer(n), nil
	case OptionNumber:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, typeErr(o, err)
		}
		return Number(f), nil
	default:
		return nil, perr.Newf(perr.ErrorCodeJSON, "option %q has unsupported type %d", o.Name, o.Type)
	}
}

func typeErr(o wireOption, err error) error {
	return perr.Wrapf(err, perr.ErrorCodeJSON, "option %q does not match type %d", o.Name, o.Type)
}

// malformed tags err with ErrMalformed and the client-facing message
func malformed(err error) error {
	return perr.Wrap(fmt.Errorf("%w: %w", ErrMalformed, err), perr.ErrorCodeJSON, "invalid interaction")
}

// Encode renders env back to the wire shape it was decoded from
// it covers the fields Decode reads, so Decode(Encode(env)) == env
func Encode(env Envelope) ([]byte, error) {
	m := env.Metadata()
	w := wireInteraction{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		Type:          m.Type,
		Token:         m.Token,
		GuildID:       m.GuildID,
		ChannelID:     m.ChannelID,
		Locale:        m.Locale,
	}
	if m.UserID != "" {
		if m.GuildID != "" {
			w.Member = &wireMember{User: &wireUser{ID: m.UserID}}
		} else {
			w.User = &wireUser{ID: m.UserID}
		}
	}
	if inv, ok := InvocationOf(env); ok {
		d, err := encodeInvocation(inv)
		if err != nil {
			return nil, err
		}
		w.Data = d
	}
	return json.Marshal(w)
}

// EncodeInvocation renders an invocation as its wire data object
func EncodeInvocation(inv Invocation) ([]byte, error) {
	d, err := encodeInvocation(inv)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

func encodeInvocation(inv Invocation) (*wireData, error) {
	d := &wireData{ID: inv.ID, Name: inv.Name, Type: 1}
	for _, o := range inv.Options {
		wo := wireOption{Name: o.Name, Type: o.Value.Type()}
		var v any
		switch x := o.Value.(type) {
		case String:
			v = string(x)
		case Bool:
			v = bool(x)
		case Integer:
			v = int64(x)
		case Number:
			v = float64(x)
		case Focused:
			v = x.Text
			wo.Focused = true
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		wo.Value = raw
		d.Options = append(d.Options, wo)
	}
	return d, nil
}
