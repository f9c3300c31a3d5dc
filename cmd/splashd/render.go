package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"splashd/internal/splash"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render <gameID>",
		Short:   "Print the splash page of a game to stdout",
		Example: "  splashd render tower-defense --lang nl --consent-domain",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			// Logs go to stderr so stdout only carries the page.
			log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			svc, err := buildService(cfg, log, false)
			if err != nil {
				return err
			}
			defer svc.Close()

			lang, _ := cmd.Flags().GetString("lang")
			playURL, _ := cmd.Flags().GetString("play-url")
			return renderPage(cmd.OutOrStdout(), svc, args[0], lang, playURL)
		},
	}
	cmd.Flags().String("lang", "", "Consent language (default from config)")
	cmd.Flags().String("play-url", "", "URL the play button posts to (default /splash/<gameID>/play)")
	return cmd
}

func renderPage(w io.Writer, svc *splash.Service, gameID, lang, playURL string) error {
	tag := language.Und
	if lang != "" {
		t, ok := splash.ParseLang(lang)
		if !ok {
			return fmt.Errorf("unknown language %q", lang)
		}
		tag = t
	}
	m, err := svc.Render(gameID, tag)
	if err != nil {
		return err
	}
	if playURL == "" {
		playURL = "/splash/" + url.PathEscape(gameID) + "/play"
	}
	page, err := splash.Page(m, playURL)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, page)
	return err
}
