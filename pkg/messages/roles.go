package messages

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Role identifies a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// DefaultRole is assigned when a message arrives without a role.
const DefaultRole = RoleUser

// Valid reports whether r is one of the allowed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleFunction:
		return true
	}
	return false
}

// RoleMetadata carries the secondary attributes a role may require. Only
// function-role messages keep these; other roles clear them.
type RoleMetadata struct {
	Name         string
	FunctionCall string
}

// RoleResult is the outcome of processing one role assignment.
type RoleResult struct {
	Role     Role
	Content  string
	Metadata RoleMetadata
}

// RoleProcessor validates roles and applies role-specific behavior to
// content. Invalid roles are logged and rejected.
type RoleProcessor struct {
	logger logrus.FieldLogger
}

// NewRoleProcessor creates a processor. A nil logger falls back to the
// standard logrus logger.
func NewRoleProcessor(logger logrus.FieldLogger) *RoleProcessor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RoleProcessor{logger: logger}
}

// ProcessRole validates role, applies its content behavior and filters
// metadata. An empty role falls back to DefaultRole. System content is
// stripped of surrounding whitespace. Function-role content passes
// through unchanged; JSON validity of the payload is the caller's check.
func (p *RoleProcessor) ProcessRole(role Role, content string, meta RoleMetadata) (RoleResult, error) {
	if role == "" {
		role = DefaultRole
	}
	if !role.Valid() {
		p.logger.WithField("role", role).Error("invalid role provided")
		return RoleResult{}, fmt.Errorf("messages: invalid role %q", role)
	}

	result := RoleResult{Role: role, Content: content}
	switch role {
	case RoleSystem:
		result.Content = strings.TrimSpace(content)
	case RoleFunction:
		result.Metadata = meta
	}
	return result, nil
}
