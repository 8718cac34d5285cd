package socket

// Message represents a command sent to the running player
type Message struct {
	Command string `json:"command"`
	Index   int    `json:"index,omitempty"` // Block index for CommandStep

	// ResponseChan receives the reply of the player, not serialized
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Current int    `json:"current"`         // Displayed block
	Target  int    `json:"target"`          // Block the player settles on
	Count   int    `json:"count"`           // Blocks in the deck
	Title   string `json:"title,omitempty"` // Deck title
}

// Command types
const (
	CommandStep   = "step"
	CommandNext   = "next"
	CommandPrev   = "prev"
	CommandStatus = "status"
)

func validCommand(command string) bool {
	switch command {
	case CommandStep, CommandNext, CommandPrev, CommandStatus:
		return true
	}
	return false
}
