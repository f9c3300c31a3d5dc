package splash

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Markup is a rendered splash overlay.
type Markup struct {
	CSS  string
	HTML string
	// ContainerID is the id of the overlay's outer element.
	ContainerID string
	// HostID is the element the overlay goes into; empty means <body>.
	HostID string
	Lang   string
	Title  string
}

// cssURL quotes u for use inside url("...").
func cssURL(u string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", "", "\r", "", "<", "%3C", ">", "%3E")
	return `"` + r.Replace(u) + `"`
}

var cssTmpl = texttemplate.Must(texttemplate.New("css").Funcs(texttemplate.FuncMap{"cssURL": cssURL}).Parse(`
body {
    position: inherit;
}
.{{.P}}splash-background-container {
    box-sizing: border-box;
    position: absolute;
    z-index: 664;
    top: 0;
    left: 0;
    width: 100%;
    height: 100%;
    overflow: hidden;
    background:
      radial-gradient(black 15%, transparent 16%) 0 0,
      radial-gradient(black 15%, transparent 16%) 8px 8px,
      radial-gradient(rgba(255,255,255,.1) 15%, transparent 20%) 0 1px,
      radial-gradient(rgba(255,255,255,.1) 15%, transparent 20%) 8px 9px;
    background-color: #282828;
    background-size: 16px 16px;
}
.{{.P}}sdk-version {
    position: absolute;
    right: 0;
    top: 0;
    color: white;
    font-size: 12px;
    padding-top: 6px;
    padding-right: 6px;
}
.{{.P}}splash-container {
    display: flex;
    flex-flow: column;
    box-sizing: border-box;
    position: absolute;
    top: 0;
    left: 0;
    width: 100%;
    height: 100%;
    overflow-y: auto;
}
.{{.P}}splash-top {
    display: flex;
    flex-flow: column;
    box-sizing: border-box;
    flex: 1;
    align-self: center;
    justify-content: center;
}
.{{.P}}splash-bottom {
    display: flex;
    flex-flow: column;
    box-sizing: border-box;
    align-self: center;
    justify-content: center;
    width: 100%;
    padding-left: 6px;
    padding-right: 6px;
    padding-bottom: 6px;
}
.{{.P}}splash-top > div {
    text-align: center;
}
.{{.P}}splash-top > div > button {
    margin: auto;
    padding: 8px;
    border-radius: 5px;
    border: 0;
    background: linear-gradient(0deg, #21A179, #1C8464);
    color: white;
    text-transform: uppercase;
    text-shadow: 0 0 1px #fff;
    font-family: Helvetica, Arial, sans-serif;
    font-weight: bold;
    font-size: 18px;
    cursor: pointer;
    box-shadow: 0 2px 4px rgba(0, 0, 0, 0.3);
    width: 150px;
}
.{{.P}}splash-top > div > button:hover {
    background: linear-gradient(0deg, #1C8464, #21A179);
}
.{{.P}}splash-top > div > button:active {
    box-shadow: 0 0 2px rgba(0, 0, 0, 0.5);
    background: linear-gradient(0deg, #1C8464, #15674E);
}
.{{.P}}splash-top > div > div {
    position: relative;
    width: 150px;
    height: 150px;
    margin: auto auto 12px;
    border-radius: 5px;
    overflow: hidden;
    border: 2px solid rgba(255, 255, 255, 0.8);
    box-shadow: inset 0 5px 5px rgba(0, 0, 0, 0.5), 0 2px 4px rgba(0, 0, 0, 0.3);
{{- if .Thumbnail}}
    background-image: url({{cssURL .Thumbnail}});
{{- end}}
    background-position: center;
    background-size: cover;
}
.{{.P}}splash-bottom > .{{.P}}splash-consent,
.{{.P}}splash-bottom > .{{.P}}splash-title {
    box-sizing: border-box;
    width: 100%;
    color: #fff;
    text-align: justify;
    font-size: 12px;
    font-family: Arial;
    font-weight: normal;
    line-height: 150%;
}
.{{.P}}splash-bottom > .{{.P}}splash-title {
    text-align: center;
    font-size: 18px;
    font-family: Helvetica, Arial, sans-serif;
    font-weight: bold;
    line-height: 100%;
    text-transform: uppercase;
}
.{{.P}}splash-bottom > .{{.P}}splash-consent a {
    color: #fff;
}
`))

var overlayTmpl = htmltemplate.Must(htmltemplate.New("overlay").Parse(`<div id="{{.ContainerID}}">
  <div class="{{.P}}splash-background-container">
    <div class="{{.P}}sdk-version">{{.Version}}</div>
    <div class="{{.P}}splash-container">
      <div class="{{.P}}splash-top">
        <div>
          <div></div>
          <button id="{{.P}}splash-button">{{.Texts.Play}}</button>
        </div>
      </div>
      <div class="{{.P}}splash-bottom">
        <div class="{{.P}}splash-title">{{.Title}}</div>
        <div class="{{.P}}splash-consent" style="display:{{if .Consent}}block{{else}}none{{end}}">
          {{.Texts.Consent}}
          <a href="{{.TermsURL}}" target="_blank">{{.Texts.TermsLink}}</a>.
        </div>
      </div>
    </div>
  </div>
</div>`))

var pageTmpl = htmltemplate.Must(htmltemplate.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
{{if .HostID}}<div id="{{.HostID}}" style="display:block">{{.Overlay}}</div>{{else}}{{.Overlay}}{{end}}
<script>
(function () {
  var button = document.getElementById({{.ButtonID}});
  var overlay = document.getElementById({{.ContainerID}});
  button.addEventListener("click", function () {
    fetch({{.PlayURL}}, {method: "POST", headers: {"Content-Type": "application/json"}, body: "{}"})
      .finally(function () { overlay.parentNode.removeChild(overlay); });
  });
})();
</script>
</body>
</html>
`))

type cssData struct {
	P         string
	Thumbnail string
}

type overlayData struct {
	P           string
	ContainerID string
	Version     string
	Title       string
	Consent     bool
	TermsURL    string
	Texts       Texts
}

type pageData struct {
	Lang        string
	Title       string
	CSS         htmltemplate.CSS
	Overlay     htmltemplate.HTML
	HostID      string
	ButtonID    string
	ContainerID string
	PlayURL     string
}

func renderCSS(prefix, thumbnail string) (string, error) {
	var buf bytes.Buffer
	if err := cssTmpl.Execute(&buf, cssData{P: prefix, Thumbnail: thumbnail}); err != nil {
		return "", fmt.Errorf("render css: %w", err)
	}
	return buf.String(), nil
}

func renderOverlay(d overlayData) (string, error) {
	var buf bytes.Buffer
	if err := overlayTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// Page wraps m into a standalone HTML document. Clicking the play button posts
// to playURL and removes the overlay.
func Page(m Markup, playURL string) (string, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, pageData{
		Lang:  m.Lang,
		Title: m.Title,
		// Both were produced by our own templates from escaped inputs.
		CSS:         htmltemplate.CSS(m.CSS),
		Overlay:     htmltemplate.HTML(m.HTML),
		HostID:      m.HostID,
		ButtonID:    m.ContainerID + "-button",
		ContainerID: m.ContainerID,
		PlayURL:     playURL,
	})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
