package standards

// Standard is a named bag of rules attached to a leaf node of the
// standards hierarchy.
type Standard struct {
	ID          string  `json:"id" yaml:"id"`
	NodeID      string  `json:"node_id" yaml:"node"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []*Rule `json:"rules" yaml:"rules"`
}

// ActiveRules returns the standard's active rules.
func (s *Standard) ActiveRules() []*Rule {
	var active []*Rule
	for _, r := range s.Rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// RuleByID returns the rule with the given id, or nil.
func (s *Standard) RuleByID(id string) *Rule {
	for _, r := range s.Rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}
