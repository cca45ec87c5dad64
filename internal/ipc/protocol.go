package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandOpen      CommandType = "OPEN"
	CommandQuick     CommandType = "QUICK"
	CommandMaximize  CommandType = "MAXIMIZE"
	CommandClose     CommandType = "CLOSE"
	CommandProfile   CommandType = "PROFILE"
	CommandGetStatus CommandType = "GET_STATUS"
	CommandAutoStart CommandType = "AUTOSTART"
	CommandReload    CommandType = "RELOAD"
	CommandExit      CommandType = "EXIT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	State         string `json:"state"`
	Session       string `json:"session,omitempty"`
	Monitor       string `json:"monitor"`
	Profile       string `json:"profile"`
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	ActiveWindow  uint32 `json:"active_window,omitempty"`
	ConfigPath    string `json:"config_path"`
	LayoutsPath   string `json:"layouts_path"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type ProfilePayload struct {
	Name string `json:"name"`
}

type AutoStartPayload struct {
	Enabled bool `json:"enabled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
