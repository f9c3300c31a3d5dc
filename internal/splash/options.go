package splash

import (
	"fmt"
	"regexp"

	"golang.org/x/text/language"
)

// Options control how the splash overlay is rendered.
type Options struct {
	// Prefix is prepended to every CSS class and element id.
	Prefix string
	// Version is printed in the top right corner.
	Version string
	// ConsentDomain shows the advertising consent text under the title.
	ConsentDomain bool
	// SplashContainerID names the host element the overlay is inserted into.
	// Empty means the overlay covers the whole page body.
	SplashContainerID string
	// DefaultLang is used when a request carries no usable language.
	DefaultLang string
}

// DefaultPrefix is used when Options.Prefix is empty.
const DefaultPrefix = "idhb-"

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "en"
	}
	return o
}

func (o Options) validate() error {
	// The prefix is written into CSS selectors unescaped.
	if !identRe.MatchString(o.Prefix) {
		return fmt.Errorf("splash: prefix %q is not a valid CSS identifier", o.Prefix)
	}
	if o.SplashContainerID != "" && !identRe.MatchString(o.SplashContainerID) {
		return fmt.Errorf("splash: container id %q is not a valid element id", o.SplashContainerID)
	}
	if _, err := language.Parse(o.DefaultLang); err != nil {
		return fmt.Errorf("splash: default lang %q: %w", o.DefaultLang, err)
	}
	return nil
}
