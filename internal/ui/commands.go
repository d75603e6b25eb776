package ui

import "sort"

// Command is one entry in the command registry (§6 external interface):
// an id/label/category plus the handler that runs when the palette routes
// a selection back to it. External collaborators (extensions, managers)
// register their own alongside ratline's built-ins.
type Command struct {
	ID       string
	Label    string
	Category string
	Handler  func()
}

// Registry is an id-keyed command table, safe to share across the event
// loop and any out-of-scope extension collaborator that registers into it.
type Registry struct {
	byID map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Command)}
}

// Register adds or replaces a command by id.
func (r *Registry) Register(c Command) {
	r.byID[c.ID] = c
}

// Lookup returns the command for id, if registered.
func (r *Registry) Lookup(id string) (Command, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Run invokes id's handler if registered and returns whether it ran.
func (r *Registry) Run(id string) bool {
	c, ok := r.byID[id]
	if !ok || c.Handler == nil {
		return false
	}
	c.Handler()
	return true
}

// All returns every registered command sorted by category then label, the
// order the palette lists them in before a filter is typed.
func (r *Registry) All() []Command {
	out := make([]Command, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Label < out[j].Label
	})
	return out
}
