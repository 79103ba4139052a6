package command

import (
	"fmt"
	"strings"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
)

// Compiler turns a guild's descriptors into CompiledCommands.
type Compiler struct {
	reserved map[string]struct{}
}

// NewCompiler returns a Compiler that rejects descriptors reusing any of the
// reserved names, since a global built-in of the same name is visible in every guild.
func NewCompiler(reserved ...string) *Compiler {
	c := &Compiler{reserved: make(map[string]struct{}, len(reserved))}
	for _, name := range reserved {
		c.reserved[name] = struct{}{}
	}
	return c
}

// Compile produces one CompiledCommand per descriptor, scoped to guildID.
// Nothing is returned if any name repeats.
func (c *Compiler) Compile(guildID string, descriptors []domain.CommandDescriptor) ([]domain.CompiledCommand, error) {
	seen := make(map[string]int, len(descriptors))
	compiled := make([]domain.CompiledCommand, 0, len(descriptors))

	for i, d := range descriptors {
		if _, ok := c.reserved[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q (entry %d) is a built-in command in guild %s",
				domain.ErrDuplicateCommand, d.Name, i, guildID)
		}
		if first, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q (entries %d and %d) in guild %s",
				domain.ErrDuplicateCommand, d.Name, first, i, guildID)
		}
		seen[d.Name] = i

		compiled = append(compiled, domain.CompiledCommand{
			Name:         d.Name,
			Description:  d.Description,
			ResponseText: d.Response(),
			Scope:        guildID,
			Fields:       d.Fields,
		})
	}

	return compiled, nil
}

// FormatHelp renders commands as "/<name> - <description>" lines.
// An empty list renders as an empty string.
func FormatHelp(cmds []domain.CompiledCommand) string {
	lines := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		lines = append(lines, fmt.Sprintf("/%s - %s", cmd.Name, cmd.Description))
	}
	return strings.Join(lines, "\n")
}
