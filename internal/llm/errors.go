package llm

import "fmt"

// ConfigError represents a missing key or model configuration
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm config error: %s", e.Message)
}

// ResponseError represents a provider response with no usable text
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("llm response error: %s", e.Message)
}

// CircuitOpenError is returned without calling the provider while the breaker is open
type CircuitOpenError struct {
	Name  string
	Cause error
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("llm circuit %s is open: %v", e.Name, e.Cause)
}

func (e *CircuitOpenError) Unwrap() error {
	return e.Cause
}
