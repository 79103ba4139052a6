package domain

import (
	"encoding/json"
	"fmt"
)

// CommandDescriptor is one entry of a guild's commands.json.
type CommandDescriptor struct {
	Name        string
	Description string
	// ResponseText is nil when the descriptor omits command_return_text.
	ResponseText *string
	// Fields holds every other key (options, nsfw, name_localizations, ...) verbatim.
	Fields map[string]json.RawMessage
}

// Response returns the text replied on invocation, falling back to DefaultResponseText.
func (d CommandDescriptor) Response() string {
	if d.ResponseText == nil {
		return DefaultResponseText
	}
	return *d.ResponseText
}

// UnmarshalJSON splits the keys the bot understands from the passthrough fields.
func (d *CommandDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = CommandDescriptor{}
	if err := takeString(raw, DescriptorKeyName, &d.Name); err != nil {
		return err
	}
	if err := takeString(raw, DescriptorKeyDescription, &d.Description); err != nil {
		return err
	}
	if _, ok := raw[DescriptorKeyResponseText]; ok {
		var text string
		if err := takeString(raw, DescriptorKeyResponseText, &text); err != nil {
			return err
		}
		d.ResponseText = &text
	}

	if len(raw) > 0 {
		d.Fields = raw
	}
	return nil
}

// MarshalJSON writes the descriptor back in the commands.json shape.
func (d CommandDescriptor) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[DescriptorKeyName] = d.Name
	out[DescriptorKeyDescription] = d.Description
	if d.ResponseText != nil {
		out[DescriptorKeyResponseText] = *d.ResponseText
	}
	return json.Marshal(out)
}

func takeString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// CompiledCommand is a descriptor bound to a scope. It carries no handler:
// invocation looks up ResponseText by (Scope, Name).
type CompiledCommand struct {
	Name         string
	Description  string
	ResponseText string
	// Scope is a guild ID or GlobalScope.
	Scope  string
	Fields map[string]json.RawMessage
}

// VisibleIn reports whether the command can be listed or invoked in the guild.
func (c CompiledCommand) VisibleIn(guildID string) bool {
	return c.Scope == guildID || c.Scope == GlobalScope
}

// CommandNames returns the names of the commands in order.
func CommandNames(cmds []CompiledCommand) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return names
}
