package splash

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestMatchLang(t *testing.T) {
	cases := []struct {
		in   []language.Tag
		want language.Tag
	}{
		{nil, language.English},
		{[]language.Tag{language.MustParse("nl-BE")}, language.Dutch},
		{[]language.Tag{language.MustParse("de-AT")}, language.German},
		{[]language.Tag{language.MustParse("fr-CA")}, language.French},
		{[]language.Tag{language.Japanese}, language.English},
		{[]language.Tag{language.Japanese, language.French}, language.French},
	}
	for _, tc := range cases {
		if got := MatchLang(tc.in...); got != tc.want {
			t.Fatalf("MatchLang(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseLang(t *testing.T) {
	if _, ok := ParseLang(""); ok {
		t.Fatalf("empty input should not resolve")
	}
	if _, ok := ParseLang("  "); ok {
		t.Fatalf("blank input should not resolve")
	}
	tag, ok := ParseLang("de-DE,de;q=0.9,en;q=0.8")
	if !ok || tag != language.German {
		t.Fatalf("got %v ok=%v, want de", tag, ok)
	}
	tag, ok = ParseLang("nl")
	if !ok || tag != language.Dutch {
		t.Fatalf("got %v ok=%v, want nl", tag, ok)
	}
}

func TestTextsFor(t *testing.T) {
	en := TextsFor(language.English)
	if en.Play != "Play" || en.TermsLink != "here" {
		t.Fatalf("unexpected english texts: %+v", en)
	}
	if !strings.Contains(en.Consent, `By clicking "PLAY"`) {
		t.Fatalf("english consent missing play reference: %q", en.Consent)
	}

	nl := TextsFor(language.MustParse("nl-NL"))
	if nl.Lang != language.Dutch || nl.Play != "Spelen" || nl.TermsLink != "hier" {
		t.Fatalf("unexpected dutch texts: %+v", nl)
	}

	fallback := TextsFor(language.Korean)
	if fallback.Lang != language.English || fallback.Play != "Play" {
		t.Fatalf("unsupported language should fall back to english: %+v", fallback)
	}
}
