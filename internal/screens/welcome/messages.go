package welcome

import (
	"github.com/senseilabs/sensei/internal/learn"
)

// moduleListMsg is sent when a study-plan generation attempt finishes.
type moduleListMsg struct {
	Tok     learn.Token
	Modules []learn.Module
	Turns   []learn.ChatTurn
	Err     error
}
