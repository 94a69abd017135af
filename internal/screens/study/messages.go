package study

import (
	"time"

	"github.com/senseilabs/sensei/internal/learn"
)

// moduleContentMsg is sent when a module-content generation attempt finishes.
type moduleContentMsg struct {
	Tok    learn.Token
	Index  int
	Blocks []learn.ContentBlock
	Turns  []learn.ChatTurn
	Err    error
}

// chatReplyMsg is sent when the tutor answers an in-module question.
type chatReplyMsg struct {
	Index    int
	Question string
	Reply    string
	Err      error
}

// sessionSavedMsg is sent when persisting the session completes.
type sessionSavedMsg struct {
	Err error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
