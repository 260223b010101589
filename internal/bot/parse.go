package bot

import (
	"fmt"
	"strconv"
	"strings"

	"cricket_bot/internal/model"
)

// ParseIDArg extracts a numeric match ID from a command argument string.
func ParseIDArg(args string) (int64, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return 0, fmt.Errorf("match ID is required")
	}
	id, err := strconv.ParseInt(strings.Fields(s)[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid match ID %q", s)
	}
	return id, nil
}

// ParseCallback splits button data of the form "action:value".
func ParseCallback(data string) (action, value string, ok bool) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ParseSubscribeArgs returns the category of a /subscribe command.
// No argument means all categories.
func ParseSubscribeArgs(args string) (model.Category, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return model.CategoryAll, nil
	}
	return model.ParseCategory(strings.Fields(s)[0])
}
