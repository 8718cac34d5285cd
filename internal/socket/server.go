package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	appDir        = "code-wave"
	socketPrefix  = "codewave-"
	socketSuffix  = ".sock"
	replyDeadline = 10 * time.Second
)

// Server represents a Unix socket server for accepting external commands
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	logger     *zap.Logger
}

// SocketDir returns the directory holding player sockets. It uses
// XDG_RUNTIME_DIR when set and ~/.local/share otherwise.
func SocketDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir)
	}
	return filepath.Join(home, ".local", "share", appDir)
}

// NewServer creates a new Unix socket server in the default socket directory
func NewServer(pid int, logger *zap.Logger) (*Server, error) {
	return NewServerInDir(SocketDir(), pid, logger)
}

// NewServerInDir creates a new Unix socket server in dir
func NewServerInDir(dir string, pid int, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("%s%d%s", socketPrefix, pid, socketSuffix))

	// Remove a stale socket left by a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	logger.Info("Socket server listening", zap.String("path", socketPath))

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		logger:     logger,
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	s.wg.Add(1)
	go s.acceptLoop()
}

// acceptLoop continuously accepts new connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("Error accepting connection", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) reply(enc *json.Encoder, resp *Response) {
	if err := enc.Encode(resp); err != nil {
		s.logger.Debug("Error writing response", zap.Error(err))
	}
}

// handleConnection processes a single client connection
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			s.logger.Warn("Error decoding message", zap.Error(err))
		}
		s.reply(encoder, &Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	if msg.Command == "" {
		s.reply(encoder, &Response{Message: "Missing command field"})
		return
	}
	if !validCommand(msg.Command) {
		s.reply(encoder, &Response{Message: fmt.Sprintf("Unknown command %q", msg.Command)})
		return
	}

	s.logger.Debug("Received command", zap.String("command", msg.Command), zap.Int("index", msg.Index))

	msg.ResponseChan = make(chan *Response, 1)

	select {
	case s.msgChan <- msg:
		select {
		case response := <-msg.ResponseChan:
			s.reply(encoder, response)
		case <-time.After(replyDeadline):
			s.reply(encoder, &Response{Message: "Command timed out"})
		case <-s.stopChan:
			s.reply(encoder, &Response{Message: "Server is shutting down"})
		}
	case <-s.stopChan:
		s.reply(encoder, &Response{Message: "Server is shutting down"})
	}
}

// Messages returns the channel for receiving messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server, waits for open connections and removes the socket
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		if s.socketPath != "" {
			os.Remove(s.socketPath)
		}
		s.logger.Info("Socket server stopped")
	})
}
