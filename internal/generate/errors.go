package generate

import (
	"errors"

	"house-modeler/internal/metrics"
)

// Kind classifies a failed generation.
type Kind int

const (
	// ServiceFailure covers transport, provider and any other non-payload failure.
	ServiceFailure Kind = iota
	// InvalidJSON means the reply text could not be parsed as JSON.
	InvalidJSON
	// UnexpectedFormat means the reply parsed but is not an array of box/light objects.
	UnexpectedFormat
)

func (k Kind) String() string {
	switch k {
	case InvalidJSON:
		return metrics.StatusInvalidJSON
	case UnexpectedFormat:
		return metrics.StatusUnexpectedFormat
	default:
		return metrics.StatusServiceFailure
	}
}

// Sentinels for errors.Is on a *GenerationError.
var (
	ErrServiceFailure   = errors.New("generate: service failure")
	ErrInvalidJSON      = errors.New("generate: invalid JSON")
	ErrUnexpectedFormat = errors.New("generate: unexpected format")

	// ErrEmptyPrompt is returned before any request when the prompt is blank.
	ErrEmptyPrompt = errors.New("generate: prompt is empty")
)

// User-facing messages. They never include the underlying cause.
const (
	msgInvalidJSON      = "The AI returned invalid JSON. Please try refining your prompt."
	msgUnexpectedFormat = "Failed to generate a valid model. The AI returned an unexpected format."
	msgServiceFailure   = "An error occurred while communicating with the AI. Please try again."
	msgUnknown          = "An unknown error occurred."
)

// GenerationError is returned by Generate. Error() is safe to show to a user; the cause is
// only reachable through Unwrap, for logging.
type GenerationError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *GenerationError) Is(target error) bool {
	switch e.Kind {
	case InvalidJSON:
		return target == ErrInvalidJSON
	case UnexpectedFormat:
		return target == ErrUnexpectedFormat
	default:
		return target == ErrServiceFailure
	}
}

func newError(kind Kind, cause error) *GenerationError {
	msg := msgServiceFailure
	switch kind {
	case InvalidJSON:
		msg = msgInvalidJSON
	case UnexpectedFormat:
		msg = msgUnexpectedFormat
	}
	return &GenerationError{Kind: kind, Message: msg, Err: cause}
}

// UserMessage converts any error from Generate into the short text shown in the error banner.
func UserMessage(err error) string {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Message
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return "Please describe the house you want to build."
	}
	return msgUnknown
}
