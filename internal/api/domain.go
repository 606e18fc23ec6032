package api

import (
	"github.com/tmeadows/templar/internal/assembly"
	"github.com/tmeadows/templar/internal/chats"
	"github.com/tmeadows/templar/internal/templates"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Templates templates.System
	Chats     chats.System
	Assembly  assembly.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	templatesSystem := templates.New(
		runtime.Database.Connection(),
		runtime.Assets,
		runtime.Logger,
		runtime.MaxTemplateBytes,
	)

	chatsSystem := chats.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	assemblySystem := assembly.New(
		templatesSystem,
		runtime.Assets,
		runtime.Logger,
	)

	return &Domain{
		Templates: templatesSystem,
		Chats:     chatsSystem,
		Assembly:  assemblySystem,
	}
}
