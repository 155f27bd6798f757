package commands

import (
	"fmt"
	"strings"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(TargetArgs) (Result, error)
	Start    func(TargetArgs) (Result, error)
	Remove   func(TargetArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing("done")
		}
		return handlers.Done(*cmd.Target)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing("start")
		}
		return handlers.Start(*cmd.Target)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing("rm")
		}
		return handlers.Remove(*cmd.Target)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing("cat")
		}
		return handlers.Category(*cmd.Category)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

// ResolvePrefix finds the single id starting with prefix. An exact match
// wins over longer ids sharing the prefix.
func ResolvePrefix(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: "task id is empty"}
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", &CommandError{Code: ErrCodeNotFound, Message: fmt.Sprintf("no task matches %q", prefix)}
	case 1:
		return matches[0], nil
	default:
		return "", &CommandError{Code: ErrCodeAmbiguous, Message: fmt.Sprintf("%q matches %d tasks", prefix, len(matches))}
	}
}
