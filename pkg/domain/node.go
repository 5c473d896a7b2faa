package domain

// NodeType constants define the transition behavior of a node.
const (
	// NodeTypeMenu shows a list of options and waits for the user to pick one.
	NodeTypeMenu = "menu"
	// NodeTypeResponse shows an answer and offers follow-up options.
	NodeTypeResponse = "response"
	// NodeTypeInput asks for free text and then follows its NextNodeID.
	NodeTypeInput = "input"
	// NodeTypeEnd terminates the conversation.
	NodeTypeEnd = "end"
)

// DefaultStartNodeID is the entry point used when the definition does not name one.
const DefaultStartNodeID = "inicio_menu"

// DefaultOptionLabel is shown for options defined without a label.
const DefaultOptionLabel = "Opción"

// Node represents a single step of the scripted conversation.
// Any Type outside the known set behaves as a pass-through node.
type Node struct {
	ID         string   `json:"id" yaml:"id" mapstructure:"id"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Message    string   `json:"message,omitempty" yaml:"message,omitempty" mapstructure:"message"`
	Options    []Option `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	NextNodeID string   `json:"next_node_id,omitempty" yaml:"next_node_id,omitempty" mapstructure:"next_node_id"`
}

// Option is a labeled choice attached to a menu or response node.
type Option struct {
	ID         string `json:"id" yaml:"id" mapstructure:"id"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	NextNodeID string `json:"next_node_id,omitempty" yaml:"next_node_id,omitempty" mapstructure:"next_node_id"`
}

// IsChoice reports whether the node routes by option id.
func (n Node) IsChoice() bool {
	return n.Type == NodeTypeMenu || n.Type == NodeTypeResponse
}

// Option returns the first option whose id matches.
func (n Node) Option(id string) (Option, bool) {
	for _, opt := range n.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Targets lists every node id referenced by this node, in declaration order.
func (n Node) Targets() []string {
	targets := make([]string, 0, len(n.Options)+1)
	for _, opt := range n.Options {
		if opt.NextNodeID != "" {
			targets = append(targets, opt.NextNodeID)
		}
	}
	if n.NextNodeID != "" {
		targets = append(targets, n.NextNodeID)
	}
	return targets
}
