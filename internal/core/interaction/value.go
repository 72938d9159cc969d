package interaction

// OptionType is the wire type of a command option
type OptionType uint8

// Option types this service decodes
const (
	OptionString  OptionType = 3
	OptionInteger OptionType = 4
	OptionBoolean OptionType = 5
	OptionNumber  OptionType = 10
)

// Value is the closed set of option values
// switch on the concrete type: String, Bool, Integer, Number, Focused
type Value interface {
	Type() OptionType
	isValue()
}

// String is a complete string option
type String string

// Bool is a boolean option
type Bool bool

// Integer is a whole number option
type Integer int64

// Number is a floating point option
type Number float64

// Focused is the partial text of the option the user is typing,
// only present on autocomplete invocations
type Focused struct {
	Text string
	Of   OptionType
}

func (String) Type() OptionType  { return OptionString }
func (Bool) Type() OptionType    { return OptionBoolean }
func (Integer) Type() OptionType { return OptionInteger }
func (Number) Type() OptionType  { return OptionNumber }
func (f Focused) Type() OptionType {
	if f.Of == 0 {
		return OptionString
	}
	return f.Of
}

func (String) isValue()  {}
func (Bool) isValue()    {}
func (Integer) isValue() {}
func (Number) isValue()  {}
func (Focused) isValue() {}
