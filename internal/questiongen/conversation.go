package questiongen

import "github.com/drdavisdfelix/quiz/internal/llm"

// Conversation is the rolling prompt context sent with every generation
// request. The system instruction is held apart and never evicted; the
// exchange messages are bounded by the window once Trim is called.
type Conversation struct {
	system   string
	window   int
	messages []llm.Message
}

// NewConversation returns an empty conversation keeping at most window
// exchange messages after each Trim. A window below 1 disables trimming.
func NewConversation(system string, window int) *Conversation {
	return &Conversation{system: system, window: window}
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(role llm.Role, content string) {
	c.messages = append(c.messages, llm.Message{Role: role, Content: content})
}

// Trim evicts the oldest exchange messages beyond the window.
func (c *Conversation) Trim() {
	if c.window < 1 || len(c.messages) <= c.window {
		return
	}
	kept := make([]llm.Message, c.window)
	copy(kept, c.messages[len(c.messages)-c.window:])
	c.messages = kept
}

// System returns the system instruction.
func (c *Conversation) System() string {
	return c.system
}

// Messages returns a copy of the exchange messages, oldest first.
func (c *Conversation) Messages() []llm.Message {
	return append([]llm.Message(nil), c.messages...)
}

// Len counts every message including the system instruction.
func (c *Conversation) Len() int {
	return len(c.messages) + 1
}

// truncate rolls the exchange back to its first n messages.
func (c *Conversation) truncate(n int) {
	if n < len(c.messages) {
		c.messages = c.messages[:n]
	}
}
