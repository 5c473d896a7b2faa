package loam

// NodeMetadata is the frontmatter of a dialogue node document.
// The document body is the node message.
type NodeMetadata struct {
	ID         string           `json:"id" mapstructure:"id"`
	Type       string           `json:"type" mapstructure:"type"`
	Options    []OptionMetadata `json:"options" mapstructure:"options"`
	NextNodeID string           `json:"next_node_id" mapstructure:"next_node_id"`
	// To is shorthand for next_node_id.
	To string `json:"to" mapstructure:"to"`
	// Start marks the entry node. At most one document may set it.
	Start bool `json:"start" mapstructure:"start"`
}

// OptionMetadata is a choice as written in frontmatter.
type OptionMetadata struct {
	ID         string `json:"id" mapstructure:"id"`
	Label      string `json:"label" mapstructure:"label"`
	Text       string `json:"text" mapstructure:"text"` // alias of label
	NextNodeID string `json:"next_node_id" mapstructure:"next_node_id"`
	To         string `json:"to" mapstructure:"to"`
}
