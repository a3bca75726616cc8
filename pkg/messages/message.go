package messages

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one message in a conversation. Role-specific behavior is
// applied at construction; the struct itself is a plain value afterwards.
type ChatMessage struct {
	ID           string       `json:"id"`
	Role         Role         `json:"role"`
	Content      string       `json:"content"`
	Name         string       `json:"name,omitempty"`
	FunctionCall string       `json:"functionCall,omitempty"`
	ReceivedAt   time.Time    `json:"receivedAt"`
	FinishReason FinishReason `json:"finishReason,omitempty"`

	PromptLength     int `json:"promptLength,omitempty"`
	CompletionLength int `json:"completionLength,omitempty"`
	TotalLength      int `json:"totalLength,omitempty"`
}

// NewChatMessage builds a message, routing role handling through a
// RoleProcessor. An empty role defaults to user; an invalid role is
// rejected.
func NewChatMessage(role Role, content string, meta RoleMetadata) (*ChatMessage, error) {
	processed, err := NewRoleProcessor(nil).ProcessRole(role, content, meta)
	if err != nil {
		return nil, err
	}
	return &ChatMessage{
		ID:           uuid.New().String(),
		Role:         processed.Role,
		Content:      processed.Content,
		Name:         processed.Metadata.Name,
		FunctionCall: processed.Metadata.FunctionCall,
		ReceivedAt:   time.Now().UTC(),
	}, nil
}

// NewSystemMessage builds a system message; its content is stripped of
// surrounding whitespace.
func NewSystemMessage(content string) (*ChatMessage, error) {
	return NewChatMessage(RoleSystem, content, RoleMetadata{})
}

// NewUserMessage builds a user message.
func NewUserMessage(content string) (*ChatMessage, error) {
	return NewChatMessage(RoleUser, content, RoleMetadata{})
}

// NewAssistantMessage builds an assistant message.
func NewAssistantMessage(content string) (*ChatMessage, error) {
	return NewChatMessage(RoleAssistant, content, RoleMetadata{})
}

// NewFunctionMessage builds a function message. The payload must be a
// JSON object; name identifies the function that produced it.
func NewFunctionMessage(name, payload string) (*ChatMessage, error) {
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("messages: function message payload is not valid JSON")
	}
	return NewChatMessage(RoleFunction, payload, RoleMetadata{Name: name})
}

// SetFinishReason normalizes and records why the completion stopped.
func (m *ChatMessage) SetFinishReason(raw string) {
	m.FinishReason = NormalizeFinishReason(raw)
}

// TrackLengths measures and records prompt and completion lengths.
func (m *ChatMessage) TrackLengths(calc *LengthCalculator, prompt string) {
	promptLength := calc.Calculate(prompt)
	completionLength := calc.Calculate(m.Content)
	m.PromptLength = promptLength.CharCount
	m.CompletionLength = completionLength.CharCount
	m.TotalLength = m.PromptLength + m.CompletionLength
}

// Validate checks the message for structural problems.
func (m *ChatMessage) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("messages: invalid role %q", m.Role)
	}
	if m.Role == RoleFunction && m.Name == "" {
		return fmt.Errorf("messages: function message requires a name")
	}
	if m.FinishReason != "" && NormalizeFinishReason(string(m.FinishReason)) == FinishUnknown &&
		m.FinishReason != FinishUnknown {
		return fmt.Errorf("messages: unrecognized finish reason %q", m.FinishReason)
	}
	return nil
}

// ToJSON serializes the message.
func (m *ChatMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
