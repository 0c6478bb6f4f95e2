package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add  func(AddArgs) (Result, error)
	Done func(DoneArgs) (Result, error)
	Goal func(GoalArgs) (Result, error)
	Show func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
