package domain

// Definition is the raw dialogue definition as provided by a loader.
// Nodes keep the order of the source document.
type Definition struct {
	StartNodeID string `json:"start_node_id,omitempty" yaml:"start_node_id,omitempty" mapstructure:"start_node_id"`
	Nodes       []Node `json:"nodes" yaml:"nodes" mapstructure:"nodes"`

	// Raw holds the source document untouched, when the loader has one.
	Raw map[string]any `json:"-" yaml:"-" mapstructure:"-"`
}

// EntryNodeID returns the configured start node or the default one.
func (d *Definition) EntryNodeID() string {
	if d.StartNodeID != "" {
		return d.StartNodeID
	}
	return DefaultStartNodeID
}
