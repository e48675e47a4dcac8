package ws

// Inbound and outbound frame shapes for the private-chat websocket. The
// field names are wire contract with the web client; ts is opaque and
// echoed back untouched.

// InboundFrame is one structured message received from a connected client.
type InboundFrame struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
	Ts      string `json:"ts"`
}

// MissingFields lists the required fields absent from the frame.
func (f *InboundFrame) MissingFields() []string {
	var missing []string
	if f.From == "" {
		missing = append(missing, "from")
	}
	if f.To == "" {
		missing = append(missing, "to")
	}
	if f.Content == "" {
		missing = append(missing, "content")
	}
	return missing
}

// MessageFrame is the delivery frame pushed to the receiver.
type MessageFrame struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
	Ts      string `json:"ts"`
}

// ErrorFrame reports a per-frame problem back to the sender; the session
// stays open.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newMessageFrame(in InboundFrame) MessageFrame {
	return MessageFrame{
		Type:    "message",
		From:    in.From,
		To:      in.To,
		Content: in.Content,
		Ts:      in.Ts,
	}
}

func newErrorFrame(message string) ErrorFrame {
	return ErrorFrame{Type: "error", Message: message}
}
