package reconcile

// Change is a single field assignment within a Patch.
type Change struct {
	Field string
	Value any
}

// Patch is the ordered set of fields a pass decides to write for one record.
// Order follows rule evaluation so progress output is stable.
type Patch struct {
	changes []Change
}

func (p *Patch) set(field string, value any) {
	for i := range p.changes {
		if p.changes[i].Field == field {
			p.changes[i].Value = value
			return
		}
	}
	p.changes = append(p.changes, Change{Field: field, Value: value})
}

func (p Patch) Get(field string) (any, bool) {
	for _, c := range p.changes {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}

func (p Patch) Len() int { return len(p.changes) }

func (p Patch) IsEmpty() bool { return len(p.changes) == 0 }

func (p Patch) Changes() []Change {
	out := make([]Change, len(p.changes))
	copy(out, p.changes)
	return out
}

// Fields returns the patch as the partial update handed to the store.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any, len(p.changes))
	for _, c := range p.changes {
		fields[c.Field] = c.Value
	}
	return fields
}
