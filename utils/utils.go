package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const nbsp = "\u00a0"

// NormalizeText приводит значение ячейки к каноничному виду для сравнения:
// неразрывные пробелы заменяются обычными, пробелы схлопываются, регистр сворачивается.
func NormalizeText(raw string) string {
	s := strings.ReplaceAll(raw, nbsp, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Caser хранит состояние, поэтому создаётся на каждый вызов.
	return cases.Fold().String(s)
}

// NormalizeSpaces убирает неразрывные пробелы и пробелы по краям, регистр не трогает.
func NormalizeSpaces(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, nbsp, " "))
}

// CompareNatural сравнивает строки с учётом чисел внутри: "Q2" < "Q10".
func CompareNatural(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	i, j := 0, 0
	for i < len(la) && j < len(lb) {
		ca, cb := rune(la[i]), rune(lb[j])
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			si := i
			for i < len(la) && unicode.IsDigit(rune(la[i])) {
				i++
			}
			sj := j
			for j < len(lb) && unicode.IsDigit(rune(lb[j])) {
				j++
			}
			if c := compareDigits(la[si:i], lb[sj:j]); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(la)-i < len(lb)-j:
		return -1
	case len(la)-i > len(lb)-j:
		return 1
	}
	return strings.Compare(a, b)
}

func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
