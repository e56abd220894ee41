// Package layout maps text between the US QWERTY and Russian ЙЦУКЕН
// keyboard layouts, character by character.
package layout

import (
	"errors"
	"strings"
	"unicode"
)

// Layout identifies one of the two supported keyboard layouts.
// Layouts are compared by value.
type Layout uint8

const (
	// EN is the Latin (US QWERTY / ABC) layout.
	EN Layout = iota
	// RU is the Cyrillic (ЙЦУКЕН) layout.
	RU
)

func (l Layout) String() string {
	switch l {
	case EN:
		return "EN"
	case RU:
		return "RU"
	default:
		return "unknown"
	}
}

// ErrUnknownLayout is returned by Transform for a target that is neither EN
// nor RU. The watcher never produces such a value; seeing this error means a
// programming mistake.
var ErrUnknownLayout = errors.New("layout: unknown target layout")

// enToRU maps each lowercase character the US QWERTY layout produces to the
// character the same physical key produces on ЙЦУКЕН.
var enToRU = map[rune]rune{
	'`': 'ё',
	'q': 'й',
	'w': 'ц',
	'e': 'у',
	'r': 'к',
	't': 'е',
	'y': 'н',
	'u': 'г',
	'i': 'ш',
	'o': 'щ',
	'p': 'з',
	'[': 'х',
	']': 'ъ',
	'a': 'ф',
	's': 'ы',
	'd': 'в',
	'f': 'а',
	'g': 'п',
	'h': 'р',
	'j': 'о',
	'k': 'л',
	'l': 'д',
	';': 'ж',
	'\'': 'э',
	'z': 'я',
	'x': 'ч',
	'c': 'с',
	'v': 'м',
	'b': 'и',
	'n': 'т',
	'm': 'ь',
	',': 'б',
	'.': 'ю',
	'/': '.',
}

var ruToEN = invert(enToRU)

func invert(m map[rune]rune) map[rune]rune {
	inv := make(map[rune]rune, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}

// Transform re-types text as if every key had been pressed with target
// active: converting to RU uses the EN→RU table, converting to EN its
// inverse. Characters outside the table pass through unchanged, and a mapped
// character keeps the case of the original.
func Transform(text string, target Layout) (string, error) {
	var table map[rune]rune
	switch target {
	case RU:
		table = enToRU
	case EN:
		table = ruToEN
	default:
		return "", ErrUnknownLayout
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		mapped, ok := table[unicode.ToLower(r)]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) {
			mapped = unicode.ToUpper(mapped)
		}
		b.WriteRune(mapped)
	}
	return b.String(), nil
}
