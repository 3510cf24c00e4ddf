package emoticon

import "strings"

// Emoticon represents a text trigger mapped to a visual asset. Built-in
// emoticons ship with the platform; custom ones are user-uploaded.
type Emoticon struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	AssetPath  string `json:"assetPath"`
	IsAnimated bool   `json:"isAnimated"`
	Category   string `json:"category"`
	IsCustom   bool   `json:"isCustom"`
}

// Token is one element of a parsed message: either a literal text
// fragment or an emoticon reference, never both.
type Token struct {
	Text     string
	Emoticon *Emoticon
}

// IsEmoticon returns true if the token is an emoticon reference
func (t Token) IsEmoticon() bool {
	return t.Emoticon != nil
}

// Parse tokenizes raw message text against an emoticon table.
//
// The scan is left-to-right. At each position every table entry is tried
// as a literal prefix match in declaration order, and the first match
// wins. Overlapping codes (":)" vs ":-)") are therefore resolved by table
// order, not by longest match. There is no escaping: a literal occurrence
// of a code always parses as the emoticon.
//
// Parse never fails; any input yields a token sequence that rejoins to
// the original text via Join.
func Parse(text string, table []Emoticon) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(text) {
		matched := false
		for t := range table {
			code := table[t].Code
			if code != "" && strings.HasPrefix(text[i:], code) {
				flush()
				tokens = append(tokens, Token{Emoticon: &table[t]})
				i += len(code)
				matched = true
				break
			}
		}
		if !matched {
			literal.WriteByte(text[i])
			i++
		}
	}
	flush()

	return tokens
}

// Join reassembles tokens into message text, substituting each emoticon
// reference with its code. Join(Parse(t, table)) == t for any t.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.IsEmoticon() {
			sb.WriteString(tok.Emoticon.Code)
		} else {
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

// Codes returns the IDs of emoticons referenced in tokens, split into
// built-in and custom. Feeds the emoticons/customEmoticons fields of an
// outbound message.
func Codes(tokens []Token) (builtin []string, custom []string) {
	seen := map[string]bool{}
	for _, tok := range tokens {
		if !tok.IsEmoticon() || seen[tok.Emoticon.ID] {
			continue
		}
		seen[tok.Emoticon.ID] = true
		if tok.Emoticon.IsCustom {
			custom = append(custom, tok.Emoticon.ID)
		} else {
			builtin = append(builtin, tok.Emoticon.ID)
		}
	}
	return builtin, custom
}

// FindByCode looks up an emoticon by exact code match, in table order
func FindByCode(table []Emoticon, code string) *Emoticon {
	for i := range table {
		if table[i].Code == code {
			return &table[i]
		}
	}
	return nil
}
