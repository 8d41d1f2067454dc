// Package i18n resolves namespaced message keys ("bookings.status.updating") against the
// embedded English and French catalogs.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Fallback is used for keys missing from the requested locale.
const Fallback = "en"

// Catalog holds flattened messages per locale.
type Catalog struct {
	messages map[string]map[string]string
	locales  []string
	matcher  language.Matcher
}

// Load reads the embedded catalogs. The fallback locale is always first.
func Load() (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	c := &Catalog{messages: map[string]map[string]string{}}
	var others []string
	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", locale, err)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", locale, err)
		}
		flat := map[string]string{}
		flatten("", tree, flat)
		c.messages[locale] = flat
		if locale != Fallback {
			others = append(others, locale)
		}
	}
	if _, ok := c.messages[Fallback]; !ok {
		return nil, fmt.Errorf("missing %s catalog", Fallback)
	}

	c.locales = append([]string{Fallback}, others...)
	tags := make([]language.Tag, len(c.locales))
	for i, l := range c.locales {
		tags[i] = language.Make(l)
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := prefix + k
		switch t := v.(type) {
		case map[string]interface{}:
			flatten(key+".", t, out)
		case string:
			out[key] = t
		default:
			out[key] = fmt.Sprint(t)
		}
	}
}

// Locales lists the available locales, fallback first.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Negotiate picks the best available locale for the given preferences, each either a
// language tag ("fr") or an Accept-Language header value.
func (c *Catalog) Negotiate(preferences ...string) string {
	_, index := language.MatchStrings(c.matcher, preferences...)
	if index < 0 || index >= len(c.locales) {
		return Fallback
	}
	return c.locales[index]
}

// T returns the message for key in locale with every {name} placeholder replaced from vars.
// Missing keys fall back to the English text, then to the key itself.
func (c *Catalog) T(locale, key string, vars map[string]string) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[Fallback][key]
	}
	if !ok {
		return key
	}
	for name, value := range vars {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

// Has reports whether key exists in the fallback catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[Fallback][key]
	return ok
}
