package splash

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// TermsURL is linked from the consent text.
const TermsURL = "https://docs.google.com/document/d/e/2PACX-1vR0BAkCq-V-OkAJ3EBT4qW4sZ9k1ta9K9EAa32V9wlxOOgP-BrY9Nv-533A_zdN3yi7tYRjO1r5cLxS/pub"

const (
	keyConsent   = "splash.consent"
	keyTermsLink = "splash.consent.link"
	keyPlay      = "splash.play"
)

// supported lists the consent languages; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Dutch, language.German, language.French}

var matcher = language.NewMatcher(supported)

var consentCatalog = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(language.English, keyPlay, "Play")
	set(language.English, keyTermsLink, "here")
	set(language.English, keyConsent, "We may show personalized ads provided by our partners, and our "+
		"services can not be used by children under 16 years old without the "+
		"consent of their legal guardian. By clicking \"PLAY\", you consent "+
		"to transmit your data to our partners for advertising purposes and "+
		"declare that you are 16 years old or have the permission of your "+
		"legal guardian. You can review our terms")

	set(language.Dutch, keyPlay, "Spelen")
	set(language.Dutch, keyTermsLink, "hier")
	set(language.Dutch, keyConsent, "We kunnen gepersonaliseerde advertenties van onze partners tonen, en onze "+
		"diensten mogen niet worden gebruikt door kinderen jonger dan 16 jaar zonder "+
		"toestemming van hun wettelijke voogd. Door op \"SPELEN\" te klikken, geef je "+
		"toestemming om je gegevens voor advertentiedoeleinden aan onze partners door te geven en "+
		"verklaar je dat je 16 jaar of ouder bent of toestemming hebt van je "+
		"wettelijke voogd. Je kunt onze voorwaarden bekijken")

	set(language.German, keyPlay, "Spielen")
	set(language.German, keyTermsLink, "hier")
	set(language.German, keyConsent, "Wir zeigen möglicherweise personalisierte Werbung unserer Partner an, und unsere "+
		"Dienste dürfen von Kindern unter 16 Jahren nicht ohne Zustimmung ihres "+
		"Erziehungsberechtigten genutzt werden. Mit einem Klick auf \"SPIELEN\" stimmst du "+
		"der Übermittlung deiner Daten an unsere Partner zu Werbezwecken zu und "+
		"erklärst, dass du mindestens 16 Jahre alt bist oder die Erlaubnis deines "+
		"Erziehungsberechtigten hast. Unsere Bedingungen findest du")

	set(language.French, keyPlay, "Jouer")
	set(language.French, keyTermsLink, "ici")
	set(language.French, keyConsent, "Nous pouvons afficher des publicités personnalisées fournies par nos partenaires, et nos "+
		"services ne peuvent pas être utilisés par des enfants de moins de 16 ans sans le "+
		"consentement de leur représentant légal. En cliquant sur \"JOUER\", vous acceptez "+
		"la transmission de vos données à nos partenaires à des fins publicitaires et "+
		"déclarez avoir 16 ans ou disposer de l'autorisation de votre "+
		"représentant légal. Vous pouvez consulter nos conditions")
	return b
}()

// Texts holds the localized strings of one splash overlay.
type Texts struct {
	Lang      language.Tag
	Play      string
	Consent   string
	TermsLink string
}

// MatchLang picks the supported language closest to the given preferences.
// With no preferences it returns the fallback language.
func MatchLang(prefs ...language.Tag) language.Tag {
	if len(prefs) == 0 {
		return supported[0]
	}
	_, idx, _ := matcher.Match(prefs...)
	return supported[idx]
}

// ParseLang resolves a "?lang=" value or an Accept-Language header. The
// boolean is false when nothing usable was found.
func ParseLang(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.Und, false
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return language.Und, false
	}
	return MatchLang(tags...), true
}

// TextsFor returns the overlay strings for tag.
func TextsFor(tag language.Tag) Texts {
	lang := MatchLang(tag)
	p := message.NewPrinter(lang, message.Catalog(consentCatalog))
	return Texts{
		Lang:      lang,
		Play:      p.Sprintf(keyPlay),
		Consent:   p.Sprintf(keyConsent),
		TermsLink: p.Sprintf(keyTermsLink),
	}
}
