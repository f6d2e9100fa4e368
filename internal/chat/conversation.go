package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// DefaultSystemPrompt grounds the assistant in the healthcare store and steers
// it toward the tools instead of guessed terminology.
const DefaultSystemPrompt = "You are a helpful healthcare assistant that can query patient data and medical " +
	"records from a SQLite database. You can help users understand patient information, analyze medical data, " +
	"and answer questions about healthcare records. Do not make assumptions about what terms can be used to " +
	"query the database; rely on the tools provided to you."

// Completer produces the next assistant message for the transcript so far.
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// Executor runs one named tool call and always returns result text, never an
// error: every tool failure degrades to text the model can read.
type Executor interface {
	Execute(ctx context.Context, name, arguments string) string
}

// Conversation owns the ordered transcript of one chat session. The transcript
// is append-only; completion calls see a snapshot, never the live slice.
type Conversation struct {
	messages []*schema.Message
}

func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{}
	if systemPrompt != "" {
		c.messages = append(c.messages, schema.SystemMessage(systemPrompt))
	}
	return c
}

// Append adds a message at the end of the transcript.
func (c *Conversation) Append(msg *schema.Message) {
	c.messages = append(c.messages, msg)
}

// Snapshot returns a copy of the transcript for a completion call.
func (c *Conversation) Snapshot() []*schema.Message {
	out := make([]*schema.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int { return len(c.messages) }

// IsExit reports whether input is an exit command.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}
	return false
}

// RunTurn processes one user input: it alternates completions and tool
// executions until the model replies with plain content, which it returns.
// Every tool call is executed sequentially in array order and its result
// appended before the next completion, because transcript order is the only
// synchronization the model relies on. Only a completion transport failure
// ends the turn early.
func RunTurn(ctx context.Context, conv *Conversation, completer Completer, executor Executor, userInput string) (string, error) {
	conv.Append(schema.UserMessage(userInput))

	for {
		reply, err := completer.Complete(ctx, conv.Snapshot())
		if err != nil {
			return "", err
		}
		conv.Append(reply)

		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}
		for _, tc := range reply.ToolCalls {
			result := executor.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
			conv.Append(schema.ToolMessage(result, tc.ID))
		}
	}
}

// Run drives the interactive loop until an exit command or input EOF. A failed
// turn is reported and the loop resumes waiting for user input.
func Run(ctx context.Context, conv *Conversation, completer Completer, executor Executor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if IsExit(input) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		reply, err := RunTurn(ctx, conv, completer, executor, input)
		if err != nil {
			fmt.Fprintf(out, "\nError: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "\nAssistant: %s\n\n", reply)
	}
}
