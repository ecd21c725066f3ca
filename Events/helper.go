package events

import (
	"github.com/go-chi/chi/v5"

	Users "vidhive/Events/Users"
	Videos "vidhive/Events/Videos"
)

// Registry holds the feature handlers and mounts their routes.
type Registry struct {
	Users  *Users.Handler
	Videos *Videos.Handler
}

func (reg *Registry) Handler(r chi.Router) {
	reg.Users.Handle(r)
	reg.Videos.Handle(r)
}
