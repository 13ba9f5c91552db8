package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Sort    func(SortArgs) (Result, error)
	Board   func(BoardArgs) (Result, error)
	Refresh func() (Result, error)
	New     func(NewArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sort handler not configured"}
		}
		return handlers.Sort(*cmd.Sort)
	case TypeBoard:
		if handlers.Board == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "board handler not configured"}
		}
		return handlers.Board(*cmd.Board)
	case TypeRefresh:
		if handlers.Refresh == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "refresh handler not configured"}
		}
		return handlers.Refresh()
	case TypeNew:
		if handlers.New == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "new handler not configured"}
		}
		return handlers.New(*cmd.New)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
