package domain

// NodePayload is the presentation of a node handed to clients.
type NodePayload struct {
	NodeID       string       `json:"node_id"`
	Type         string       `json:"type"`
	Message      string       `json:"message"`
	Options      []OptionView `json:"options"`
	ExpectsInput bool         `json:"expects_input"`
	IsEnd        bool         `json:"is_end"`
}

// OptionView is the client-facing part of an Option.
type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NewPayload converts a node into its presentation. It never fails.
// Nodes without a type are presented as "response".
func NewPayload(node Node) NodePayload {
	nodeType := node.Type
	if nodeType == "" {
		nodeType = NodeTypeResponse
	}

	options := make([]OptionView, 0, len(node.Options))
	for _, opt := range node.Options {
		label := opt.Label
		if label == "" {
			label = DefaultOptionLabel
		}
		options = append(options, OptionView{ID: opt.ID, Label: label})
	}

	return NodePayload{
		NodeID:       node.ID,
		Type:         nodeType,
		Message:      node.Message,
		Options:      options,
		ExpectsInput: nodeType == NodeTypeInput,
		IsEnd:        nodeType == NodeTypeEnd,
	}
}
