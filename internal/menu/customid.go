package menu

import "strings"

// Custom ids have the form gl:<action>[:<arg>].
const idPrefix = "gl"

const (
	actionSettings = "settings"
	actionToggle   = "toggle"
	actionDetails  = "details"
	actionChannel  = "channel"
	actionLanguage = "language"
	actionCategory = "cat"
	actionBack     = "back"
)

func customID(action string, arg ...string) string {
	parts := append([]string{idPrefix, action}, arg...)
	return strings.Join(parts, ":")
}

// parseCustomID splits an id produced by customID. Ids from other applications fail.
func parseCustomID(id string) (action, arg string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) < 2 || parts[0] != idPrefix || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		arg = parts[2]
	}
	return parts[1], arg, true
}
