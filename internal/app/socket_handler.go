package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pstuifzand/code-wave/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket and
// answers on the message's response channel
func (a *App) handleSocketMessage(msg socket.Message) {
	a.logger.Debug("socket message", zap.String("command", msg.Command), zap.Int("index", msg.Index))

	resp := &socket.Response{Success: true}
	switch msg.Command {
	case socket.CommandStep:
		if !a.GoTo(msg.Index) {
			resp.Success = false
			resp.Message = fmt.Sprintf("step %d out of range 0..%d", msg.Index, a.deck.Len()-1)
		}
	case socket.CommandNext:
		if !a.Next() {
			resp.Success = false
			resp.Message = "already at the last step"
		}
	case socket.CommandPrev:
		if !a.Prev() {
			resp.Success = false
			resp.Message = "already at the first step"
		}
	case socket.CommandStatus:
	default:
		resp.Success = false
		resp.Message = "unknown command: " + msg.Command
	}

	resp.Current = a.choreo.Current()
	resp.Target = a.choreo.Target()
	resp.Count = a.deck.Len()
	resp.Title = a.deck.Title
	if resp.Success && msg.Command != socket.CommandStatus {
		a.SetStatus(fmt.Sprintf("Remote: %s", msg.Command))
	}

	if msg.ResponseChan != nil {
		msg.ResponseChan <- resp
	}
}
