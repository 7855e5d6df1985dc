// Package dispatcher routes user events to handlers by (trigger, dialogue
// state) and renders the replies through a Messenger.
package dispatcher

import "context"

// Intent is the coarse kind of an incoming event.
type Intent string

const (
	IntentCommand  Intent = "command"
	IntentText     Intent = "text"
	IntentLocation Intent = "location"
	IntentButton   Intent = "button"
)

// Event is a transport-neutral user event.
type Event struct {
	UserID int64
	ChatID int64
	Intent Intent

	// Command is the command name without the leading slash.
	Command string
	Text    string

	Latitude  float64
	Longitude float64

	// Data is the button payload. MessageID is the message carrying the
	// button, edited in place by most button handlers.
	Data       string
	CallbackID string
	MessageID  int
}

// Button is one keyboard key. Data is the callback payload of inline
// buttons; RequestLocation only applies to reply keyboards.
type Button struct {
	Text            string
	Data            string
	RequestLocation bool
}

// Keyboard is attached to an outgoing message.
type Keyboard struct {
	Rows [][]Button
	// Reply selects a reply keyboard instead of an inline one.
	Reply bool
	// Remove hides a previously shown reply keyboard.
	Remove bool
}

// Messenger is the outbound side of the chat platform.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, path string, kb *Keyboard) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error
	AnswerCallback(ctx context.Context, callbackID string) error
}
