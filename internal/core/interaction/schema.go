package interaction

// CommandType is the wire application command type
type CommandType uint8

// CommandChatInput is a slash command
const CommandChatInput CommandType = 1

// CommandSchema is the registration payload of one application command
type CommandSchema struct {
	Type        CommandType    `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Options     []OptionSchema `json:"options,omitempty"`
}

// OptionSchema describes one command option
type OptionSchema struct {
	Type         OptionType `json:"type"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Required     bool       `json:"required,omitempty"`
	Autocomplete bool       `json:"autocomplete,omitempty"`
}

// SlashCommand builds a chat input command schema
func SlashCommand(name, description string, options ...OptionSchema) CommandSchema {
	return CommandSchema{Type: CommandChatInput, Name: name, Description: description, Options: options}
}
