// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides localization for Librarian. Translations live in
// embedded YAML files under locales/ and are loaded with go-i18n.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// DefaultLang is used when no language has been configured.
const DefaultLang = "ru"

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads every embedded locale and selects lang, falling back to
// English for messages the language lacks.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = bundle.ParseMessageFileBytes(data, f.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang, "en")
	current = lang
}

// SetLang changes the active language.
func SetLang(lang string) { Init(lang) }

// GetLang returns the active language tag.
func GetLang() string { return current }

// GetAvailableLocales maps every embedded locale to its display name.
func GetAvailableLocales() map[string]string {
	out := map[string]string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		code := strings.TrimSuffix(f.Name(), ".yaml")
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		out[code] = display.Self.Name(tag)
	}
	return out
}

// T translates messageID. When args are given the translation is used as a
// fmt format string. Unknown IDs are returned as-is.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init(DefaultLang)
	}
	// A message missing in the active language comes back from the English
	// fallback together with a not-found error.
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil && msg == "" {
		msg = messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
