package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDone Type = "done"
	TypeGoal Type = "goal"
	TypeShow Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Quadrant string
	Date     string
	Repeat   string
	GoalID   string
}

type DoneArgs struct {
	Target string
}

type GoalArgs struct {
	Title string
	Total int
	Unit  string
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Done *DoneArgs
	Goal *GoalArgs
	Show *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	out := AddArgs{}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "quad:"):
			out.Quadrant = strings.ToUpper(arg[len("quad:"):])
		case strings.HasPrefix(lower, "date:"):
			out.Date = arg[len("date:"):]
		case strings.HasPrefix(lower, "repeat:"):
			out.Repeat = strings.ToLower(arg[len("repeat:"):])
		case strings.HasPrefix(lower, "goal:"):
			out.GoalID = arg[len("goal:"):]
		default:
			titleWords = append(titleWords, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a single task id"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	out := GoalArgs{}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "total:"):
			n, err := strconv.Atoi(arg[len("total:"):])
			if err != nil || n <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal total must be a positive number"}
			}
			out.Total = n
		case strings.HasPrefix(lower, "unit:"):
			out.Unit = arg[len("unit:"):]
		default:
			titleWords = append(titleWords, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a title"}
	}
	if out.Total == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires total:N"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &out}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: strings.ToLower(args[0])}}, nil
}
