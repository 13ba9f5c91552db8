package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeSort    Type = "sort"
	TypeBoard   Type = "board"
	TypeRefresh Type = "refresh"
	TypeNew     Type = "new"
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

type SortArgs struct {
	Column string
}

type BoardArgs struct {
	Name string
}

type NewArgs struct {
	Title string
}

type Command struct {
	Type  Type
	Raw   string
	Sort  *SortArgs
	Board *BoardArgs
	New   *NewArgs
}

// sortColumns maps palette shorthand to the table's sortable fields.
var sortColumns = map[string]string{
	"status":    "status",
	"deadline":  "deadline",
	"created":   "createdAt",
	"createdat": "createdAt",
}

// Parse reads a palette line such as "/sort deadline", "/board all" or
// "/new fix login page".
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
	case TypeSort:
		return parseSort(input, args)
	case TypeBoard:
		return parseBoard(input, args)
	case TypeRefresh:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "refresh takes no arguments"}
		}
		return Command{Type: TypeRefresh, Raw: input}, nil
	case TypeNew:
		return parseNew(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires a column: status, deadline or created"}
	}
	column, ok := sortColumns[strings.ToLower(args[0])]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort column: %s", args[0])}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Column: column}}, nil
}

func parseBoard(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "board requires a name or \"all\""}
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeBoard, Raw: raw, Board: &BoardArgs{Name: name}}, nil
}

func parseNew(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "new requires a title"}
	}
	return Command{Type: TypeNew, Raw: raw, New: &NewArgs{Title: title}}, nil
}
