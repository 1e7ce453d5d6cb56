package utils

import "strings"

type AllianceDefaults struct {
	First  string
	Second string
}

var (
	TeamDefaults   = AllianceDefaults{First: "Team 1", Second: "Team 2"}
	PlayerDefaults = AllianceDefaults{First: "Player 1", Second: "Player 2"}
)

// SplitAllianceLabel делит метку альянса "A + B" на два имени.
// Сначала ищется " + " (первое вхождение), иначе голый "+" и первые два куска.
// Пустая часть заменяется позиционным значением по умолчанию.
func SplitAllianceLabel(raw string, defaults AllianceDefaults) (string, string) {
	s := strings.TrimSpace(raw)

	var first, second string
	if strings.Contains(s, " + ") {
		parts := strings.SplitN(s, " + ", 2)
		first, second = parts[0], parts[1]
	} else {
		parts := strings.Split(s, "+")
		first = parts[0]
		if len(parts) > 1 {
			second = parts[1]
		}
	}

	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)
	if first == "" {
		first = defaults.First
	}
	if second == "" {
		second = defaults.Second
	}
	return first, second
}
