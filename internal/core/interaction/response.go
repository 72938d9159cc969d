package interaction

import (
	"encoding/json"

	pstrings "wikicord/internal/platform/strings"
)

// Platform limits, counted in characters
const (
	MaxContent          = 2000
	MaxEmbedTitle       = 256
	MaxEmbedDescription = 4096
	MaxFieldName        = 256
	MaxFieldValue       = 1024
	MaxFooterText       = 2048
	MaxChoiceName       = 100
	MaxChoiceValue      = 100
	MaxChoices          = 25
)

// ResponseType is the wire interaction callback type
type ResponseType uint8

// Response types this service emits
const (
	ResponsePong               ResponseType = 1
	ResponseChannelMessage     ResponseType = 4
	ResponseAutocompleteResult ResponseType = 8
)

// FlagEphemeral limits a message to the invoking user
const FlagEphemeral = 1 << 6

// Response is the closed set of replies: Pong, Message, Choices
type Response interface {
	ResponseType() ResponseType
	isResponse()
}

// Pong acknowledges a Ping
type Pong struct{}

// Message is an immediate channel message, optionally with embeds
type Message struct {
	Content   string
	Embeds    []Embed
	Ephemeral bool
}

// Choices is the autocomplete suggestion list
type Choices struct {
	Choices []Choice
}

// Choice is one suggestion: Name is shown, Value is submitted
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Embed is a rich message block
type Embed struct {
	Title       string       `json:"title,omitempty"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Thumbnail   *EmbedImage  `json:"thumbnail,omitempty"`
}

// EmbedField is a titled section of an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter is the small print under an embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedImage references a remote image
type EmbedImage struct {
	URL string `json:"url"`
}

func (Pong) ResponseType() ResponseType    { return ResponsePong }
func (Message) ResponseType() ResponseType { return ResponseChannelMessage }
func (Choices) ResponseType() ResponseType { return ResponseAutocompleteResult }

func (Pong) isResponse()    {}
func (Message) isResponse() {}
func (Choices) isResponse() {}

// Truncate limits s to max characters, cutting to max-3 plus "..."
func Truncate(s string, max int) string { return pstrings.Ellipsize(s, max) }

// Text builds a plain message, content is cut to the platform limit
func Text(content string, ephemeral bool) Message {
	return Message{Content: Truncate(content, MaxContent), Ephemeral: ephemeral}
}

// Embeds builds a message made of embeds only
func Embeds(ephemeral bool, embeds ...Embed) Message {
	return Message{Embeds: embeds, Ephemeral: ephemeral}
}

// NewChoice builds a suggestion with the display name cut to MaxChoiceName
func NewChoice(name, value string) Choice {
	return Choice{Name: Truncate(name, MaxChoiceName), Value: Truncate(value, MaxChoiceValue)}
}

// Suggest builds a choice list, never nil so it encodes as []
func Suggest(choices ...Choice) Choices {
	if choices == nil {
		choices = []Choice{}
	}
	return Choices{Choices: choices}
}

// Field builds an embed field with both parts cut to their limits
func Field(name, value string) EmbedField {
	return EmbedField{Name: Truncate(name, MaxFieldName), Value: Truncate(value, MaxFieldValue)}
}

// wireResponse is the callback body
type wireResponse struct {
	Type ResponseType `json:"type"`
	Data any          `json:"data,omitempty"`
}

type wireMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
	Flags   int     `json:"flags,omitempty"`
}

type wireChoices struct {
	Choices []Choice `json:"choices"`
}

// EncodeResponse renders a response as the callback JSON body
func EncodeResponse(r Response) ([]byte, error) {
	w := wireResponse{Type: r.ResponseType()}
	switch x := r.(type) {
	case Pong:
	case Message:
		m := wireMessage{Content: x.Content, Embeds: x.Embeds}
		if x.Ephemeral {
			m.Flags = FlagEphemeral
		}
		w.Data = m
	case Choices:
		w.Data = wireChoices{Choices: Suggest(x.Choices...).Choices}
	}
	return json.Marshal(w)
}
