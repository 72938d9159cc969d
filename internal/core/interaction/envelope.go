// Package interaction models platform interactions: the decoded envelope,
// command invocations with typed option values, and the response shapes
package interaction

import "strconv"

// Kind is the wire interaction type
type Kind int

// Interaction kinds sent by the platform
const (
	KindPing         Kind = 1
	KindCommand      Kind = 2
	KindComponent    Kind = 3
	KindAutocomplete Kind = 4
	KindModal        Kind = 5
)

// String is used for logs and metric labels
func (k Kind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindCommand:
		return "command"
	case KindComponent:
		return "component"
	case KindAutocomplete:
		return "autocomplete"
	case KindModal:
		return "modal"
	default:
		return "type_" + strconv.Itoa(int(k))
	}
}

// Meta is the envelope metadata kept for logging and routing
type Meta struct {
	ID            string
	ApplicationID string
	Type          Kind
	Token         string
	GuildID       string
	ChannelID     string
	UserID        string
	Locale        string
}

// Envelope is the closed set of decoded interactions: Ping, Command, Autocomplete, Other
type Envelope interface {
	Metadata() Meta
	isEnvelope()
}

// Ping is the platform liveness check
type Ping struct{ Meta }

// Command is an application command invocation
type Command struct {
	Meta
	Invocation Invocation
}

// Autocomplete asks for suggestions while an option is being typed
type Autocomplete struct {
	Meta
	Invocation Invocation
}

// Other is any kind this service does not handle, Meta.Type holds the raw kind
type Other struct{ Meta }

func (m Meta) Metadata() Meta { return m }

func (Ping) isEnvelope()         {}
func (Command) isEnvelope()      {}
func (Autocomplete) isEnvelope() {}
func (Other) isEnvelope()        {}

// InvocationOf returns the invocation carried by command-bearing envelopes
func InvocationOf(env Envelope) (Invocation, bool) {
	switch e := env.(type) {
	case Command:
		return e.Invocation, true
	case Autocomplete:
		return e.Invocation, true
	default:
		return Invocation{}, false
	}
}

// Invocation is a command name with its ordered options, names are unique
type Invocation struct {
	ID      string
	Name    string
	Options []Option
}

// Option is one named argument of an invocation
type Option struct {
	Name  string
	Value Value
}

// Lookup returns the value of the named option
func (in Invocation) Lookup(name string) (Value, bool) {
	for _, o := range in.Options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return nil, false
}

// String returns the named option when it is a String
func (in Invocation) String(name string) (string, bool) {
	v, ok := in.Lookup(name)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// Bool returns the named option when it is a Bool
func (in Invocation) Bool(name string) (bool, bool) {
	v, ok := in.Lookup(name)
	if !ok {
		return false, false
	}
	b, ok := v.(Bool)
	return bool(b), ok
}

// Focused returns the option currently being typed, if any
func (in Invocation) Focused() (Option, bool) {
	for _, o := range in.Options {
		if _, ok := o.Value.(Focused); ok {
			return o, true
		}
	}
	return Option{}, false
}
