package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/charmbracelet/log"
)

// statusTimeout bounds how long GET_STATUS waits for the coordinator.
const statusTimeout = 2 * time.Second

// Handler is the daemon side of the control socket.
type Handler interface {
	Post(coordinator.Message)
	Status(ctx context.Context) (StatusData, error)
	Reload() error
	SetAutoStart(enabled bool) error
	Shutdown()
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	handler      Handler
	logger       *log.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, handler Handler, logger *log.Logger) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		handler:    handler,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "err", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "err", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "err", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC command", "command", req.Command)

	switch req.Command {
	case CommandOpen:
		s.handler.Post(coordinator.InitializeWindows{})
	case CommandQuick:
		s.handler.Post(coordinator.InitializeWindows{Quick: true})
	case CommandMaximize:
		s.handler.Post(coordinator.HotkeyPressed{Kind: coordinator.HotkeyMaximize})
	case CommandClose:
		s.handler.Post(coordinator.CloseWindows{})
	case CommandProfile:
		return s.handleProfile(req.Payload)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandAutoStart:
		return s.handleAutoStart(req.Payload)
	case CommandReload:
		if err := s.handler.Reload(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
		}
	case CommandExit:
		s.handler.Shutdown()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleProfile(payload json.RawMessage) *Response {
	var req ProfilePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid profile payload: %v", err))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return NewErrorResponse("name is required")
	}
	if strings.Contains(name, ":") {
		return NewErrorResponse(fmt.Sprintf("Invalid profile name: %s", name))
	}

	s.handler.Post(coordinator.ProfileChange{Profile: name})
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	status, err := s.handler.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleAutoStart(payload json.RawMessage) *Response {
	var req AutoStartPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid autostart payload: %v", err))
	}
	if err := s.handler.SetAutoStart(req.Enabled); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to set autostart: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
