package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeStart    Type = "start"
	TypeRemove   Type = "rm"
	TypeShow     Type = "show"
	TypeCategory Type = "cat"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeAmbiguous       ErrorCode = "ambiguous"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Show subjects.
const (
	ShowAll     = "all"
	ShowWeek    = "week"
	ShowMonth   = "month"
	ShowOverdue = "overdue"
	ShowTodo    = "todo"
	ShowDoing   = "doing"
	ShowDone    = "done"
)

var showSubjects = []string{ShowAll, ShowWeek, ShowMonth, ShowOverdue, ShowTodo, ShowDoing, ShowDone}

// AddArgs holds a new task. Deadline, Priority and Category come from
// due:, p: and cat: tokens anywhere in the input; the rest is the title.
type AddArgs struct {
	Title    string
	Deadline string
	Priority string
	Category string
}

type TargetArgs struct {
	Target string
}

type ShowArgs struct {
	Subject string
}

type CategoryArgs struct {
	Name string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Show     *ShowArgs
	Category *CategoryArgs
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
	case TypeDone, TypeStart, TypeRemove:
		return parseTarget(input, Type(head), args)
	case TypeShow:
		return parseShow(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			out.Deadline = arg[len("due:"):]
		case strings.HasPrefix(lower, "p:"):
			out.Priority = strings.ToLower(arg[len("p:"):])
		case strings.HasPrefix(lower, "cat:"):
			out.Category = arg[len("cat:"):]
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task id", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Target: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	for _, known := range showSubjects {
		if subject == known {
			return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
		}
	}
	return Command{}, &CommandError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("show subject must be one of %s", strings.Join(showSubjects, ", ")),
	}
}

func parseCategory(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "cat requires a name"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name}}, nil
}
