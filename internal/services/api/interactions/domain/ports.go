// Package domain holds the ports of the interactions module
package domain

import (
	"context"

	"wikicord/internal/core/interaction"
)

// ServicePort is the interface implemented by the interactions dispatcher
type ServicePort interface {
	Dispatch(ctx context.Context, env interaction.Envelope) (interaction.Response, error)
}

// Command is one registered application command
// Execute answers a full invocation; Suggest answers autocomplete and must stay cheap
type Command interface {
	Schema() interaction.CommandSchema
	Execute(ctx context.Context, inv interaction.Invocation) (interaction.Response, error)
	Suggest(ctx context.Context, inv interaction.Invocation) (interaction.Choices, error)
}

// ContentSource is the outbound article collaborator
type ContentSource interface {
	Summary(ctx context.Context, title string) (Article, error)
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// CommandCatalog lists the registration payloads of the registered commands
type CommandCatalog interface {
	Schemas() []interaction.CommandSchema
}
