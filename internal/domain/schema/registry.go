package schema

// Registry indexes form schemas by form name, preserving declaration order.
type Registry struct {
	order   []string
	schemas map[string]Schema
}

func NewRegistry(groups ...[]Schema) *Registry {
	r := &Registry{schemas: make(map[string]Schema)}
	for _, group := range groups {
		for _, s := range group {
			if _, exists := r.schemas[s.Form]; !exists {
				r.order = append(r.order, s.Form)
			}
			r.schemas[s.Form] = s
		}
	}
	return r
}

func (r *Registry) Get(form string) (Schema, error) {
	s, ok := r.schemas[form]
	if !ok {
		return Schema{}, ErrSchemaNotFound
	}
	return s, nil
}

func (r *Registry) All() []Schema {
	out := make([]Schema, 0, len(r.order))
	for _, form := range r.order {
		out = append(out, r.schemas[form])
	}
	return out
}
