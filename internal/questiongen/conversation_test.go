package questiongen

import (
	"fmt"
	"testing"

	"github.com/drdavisdfelix/quiz/internal/llm"
)

func TestConversation_TrimKeepsNewest(t *testing.T) {
	c := NewConversation(SystemPrompt, 4)
	for i := 1; i <= 7; i++ {
		c.Append(llm.RoleUser, fmt.Sprintf("m%d", i))
	}
	if c.Len() != 8 {
		t.Fatalf("Len() = %d before trim, want 8", c.Len())
	}

	c.Trim()

	msgs := c.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "m4" || msgs[3].Content != "m7" {
		t.Errorf("kept %q..%q, want m4..m7", msgs[0].Content, msgs[3].Content)
	}
	if c.System() != SystemPrompt {
		t.Errorf("system message changed: %q", c.System())
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestConversation_TrimUnderWindowIsNoop(t *testing.T) {
	c := NewConversation("sys", 10)
	c.Append(llm.RoleUser, "a")
	c.Append(llm.RoleAssistant, "b")
	c.Trim()
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	c := NewConversation("sys", 10)
	c.Append(llm.RoleUser, "original")

	msgs := c.Messages()
	msgs[0].Content = "changed"

	if c.Messages()[0].Content != "original" {
		t.Fatal("Messages() exposed internal storage")
	}
}

func TestConversation_Truncate(t *testing.T) {
	c := NewConversation("sys", 10)
	c.Append(llm.RoleUser, "a")
	c.Append(llm.RoleUser, "b")
	c.Append(llm.RoleUser, "c")

	c.truncate(1)
	if c.Len() != 2 || c.Messages()[0].Content != "a" {
		t.Fatalf("truncate left %+v", c.Messages())
	}

	c.truncate(5)
	if c.Len() != 2 {
		t.Fatalf("truncate beyond length changed the conversation: %d", c.Len())
	}
}

func TestCounter(t *testing.T) {
	var c Counter
	if c.Last() != 0 {
		t.Fatalf("Last() = %d, want 0", c.Last())
	}
	for want := 1; want <= 3; want++ {
		if got := c.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
	if c.Last() != 3 {
		t.Fatalf("Last() = %d, want 3", c.Last())
	}
}
