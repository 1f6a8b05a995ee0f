package diagram

import "fmt"

// Level is the severity of a Diagnostic.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Diagnostic records a recoverable problem found while compiling or
// editing. Diagnostics are returned alongside results, never thrown.
type Diagnostic struct {
	Level       Level  `json:"level"`
	ComponentID string `json:"componentId,omitempty"`
	Message     string `json:"message"`
}

// Infof builds an informational diagnostic for componentID.
func Infof(componentID, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelInfo, ComponentID: componentID, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning diagnostic for componentID.
func Warnf(componentID, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelWarn, ComponentID: componentID, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error diagnostic for componentID.
func Errorf(componentID, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelError, ComponentID: componentID, Message: fmt.Sprintf(format, args...)}
}

// String formats d as "level [id]: message".
func (d Diagnostic) String() string {
	if d.ComponentID == "" {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Level, d.ComponentID, d.Message)
}
