package emoticon

import (
	"testing"
)

func table(codes ...string) []Emoticon {
	out := make([]Emoticon, len(codes))
	for i, c := range codes {
		out[i] = Emoticon{ID: c, Code: c, Name: c}
	}
	return out
}

func TestParse_PlainText(t *testing.T) {
	tokens := Parse("hello world", table(":)"))

	if len(tokens) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(tokens))
	}
	if tokens[0].IsEmoticon() || tokens[0].Text != "hello world" {
		t.Errorf("Expected single text token, got %+v", tokens[0])
	}
}

func TestParse_Empty(t *testing.T) {
	if tokens := Parse("", table(":)")); len(tokens) != 0 {
		t.Errorf("Empty input should yield no tokens, got %d", len(tokens))
	}
}

func TestParse_EmoticonInMiddle(t *testing.T) {
	tokens := Parse("hello :) friend", table(":)"))

	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "hello " {
		t.Errorf("First token should be 'hello ', got %q", tokens[0].Text)
	}
	if !tokens[1].IsEmoticon() || tokens[1].Emoticon.Code != ":)" {
		t.Errorf("Second token should be the :) emoticon, got %+v", tokens[1])
	}
	if tokens[2].Text != " friend" {
		t.Errorf("Third token should be ' friend', got %q", tokens[2].Text)
	}
}

func TestParse_AdjacentEmoticons(t *testing.T) {
	tokens := Parse(":):)", table(":)"))

	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(tokens))
	}
	for i, tok := range tokens {
		if !tok.IsEmoticon() {
			t.Errorf("Token %d should be an emoticon, got %+v", i, tok)
		}
	}
}

func TestParse_PrefixOnlyMatches(t *testing.T) {
	// ":)" is not a prefix of ":-)" so ":-)" must not be mis-split
	tbl := table(":)", ":-)")

	tokens := Parse("Hi :-)", tbl)
	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "Hi " {
		t.Errorf("First token should be 'Hi ', got %q", tokens[0].Text)
	}
	if !tokens[1].IsEmoticon() || tokens[1].Emoticon.Code != ":-)" {
		t.Errorf("Second token should be the :-) emoticon, got %+v", tokens[1])
	}

	tokens = Parse("Hi :)", tbl)
	if len(tokens) != 2 || !tokens[1].IsEmoticon() || tokens[1].Emoticon.Code != ":)" {
		t.Errorf("Expected 'Hi ' + :) emoticon, got %+v", tokens)
	}
}

func TestParse_TableOrderWins(t *testing.T) {
	// ":-" declared before ":-)" shadows it: first match in table order
	// wins, even when a longer code would also match
	tbl := table(":-", ":-)")

	tokens := Parse(":-)", tbl)
	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d: %+v", len(tokens), tokens)
	}
	if !tokens[0].IsEmoticon() || tokens[0].Emoticon.Code != ":-" {
		t.Errorf("First token should be the :- emoticon (table order), got %+v", tokens[0])
	}
	if tokens[1].Text != ")" {
		t.Errorf("Remainder should be literal ')', got %+v", tokens[1])
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	tbl := table(":)", ":-)", ":(", "<3", ":party:")

	inputs := []string{
		"",
		"plain text only",
		":)",
		"hello :) friend",
		":):(",
		"ends with :-)",
		"<3 nested <3 codes <3",
		"unicode héllo :) wörld ♥",
		"unterminated :",
		":party: time :party:",
		"a : ) spaced out non-match",
	}

	for _, input := range inputs {
		if got := Join(Parse(input, tbl)); got != input {
			t.Errorf("Round trip failed: input %q, got %q", input, got)
		}
	}
}

func TestJoin_RoundTripEmptyTable(t *testing.T) {
	input := "no emoticons :) here"
	if got := Join(Parse(input, nil)); got != input {
		t.Errorf("Round trip with empty table failed: got %q", got)
	}
}

func TestCodes_SplitsBuiltinAndCustom(t *testing.T) {
	tbl := []Emoticon{
		{ID: "em-1", Code: ":)"},
		{ID: "em-2", Code: ":party:", IsCustom: true},
	}

	tokens := Parse("hey :) it's :party: time :)", tbl)
	builtin, custom := Codes(tokens)

	if len(builtin) != 1 || builtin[0] != "em-1" {
		t.Errorf("Expected builtin [em-1], got %v", builtin)
	}
	if len(custom) != 1 || custom[0] != "em-2" {
		t.Errorf("Expected custom [em-2], got %v", custom)
	}
}

func TestCodes_NoEmoticons(t *testing.T) {
	builtin, custom := Codes(Parse("plain", table(":)")))
	if len(builtin) != 0 || len(custom) != 0 {
		t.Errorf("Expected no codes, got %v %v", builtin, custom)
	}
}

func TestFindByCode(t *testing.T) {
	tbl := table(":)", ":(")

	if e := FindByCode(tbl, ":("); e == nil || e.Code != ":(" {
		t.Errorf("FindByCode failed, got %+v", e)
	}
	if e := FindByCode(tbl, ":missing:"); e != nil {
		t.Errorf("Expected nil for unknown code, got %+v", e)
	}
}
