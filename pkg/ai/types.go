package ai

import "context"

// Prompt carries the role-tagged messages submitted for one completion call.
type Prompt struct {
	System string
	User   string
}

// Completer describes a chat-completion model that turns a prompt into
// free-form text. The returned text is untrusted: callers must not assume
// it is well formed.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
