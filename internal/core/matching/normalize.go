package matching

import (
	"strings"
	"unicode"
)

// Normalize strips everything but letters and digits from s and lower-cases it.
// Letters of any script are kept, so Hangul names survive normalization.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// nameIndex maps normalized real names and nicknames to the active members carrying them.
type nameIndex struct {
	realNames map[string][]string
	nicknames map[string][]string
}

func newNameIndex(members []memberName) nameIndex {
	idx := nameIndex{
		realNames: make(map[string][]string),
		nicknames: make(map[string][]string),
	}
	for _, m := range members {
		if m.realName != "" {
			idx.realNames[m.realName] = append(idx.realNames[m.realName], m.memberID)
		}
		if m.nickname != "" {
			idx.nicknames[m.nickname] = append(idx.nicknames[m.nickname], m.memberID)
		}
	}
	return idx
}

// identifies reports whether name is carried by exactly one active member and that member is memberID.
func identifies(holders map[string][]string, name, memberID string) bool {
	ids := holders[name]
	return len(ids) == 1 && ids[0] == memberID
}

type memberName struct {
	memberID string
	realName string
	nickname string
}
