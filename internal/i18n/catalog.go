// Package i18n holds the translated strings shown by the shell.
//
// Every locale is an embedded YAML document with four sections: flat
// messages (templates with {param} placeholders), the message-of-the-day
// pool, blog posts and man pages. Lookups fall back to Spanish and then to
// the raw key, so a missing translation never breaks a command.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"
)

// Fallback is the locale consulted when the requested one lacks a key.
const Fallback = "es"

//go:embed locales/*.yaml
var localeFS embed.FS

// Params fills {name} placeholders in a template.
type Params map[string]any

// Func is the translation function handed to command handlers.
type Func func(key string, params Params) string

// BlogPost is one entry of the blog section.
type BlogPost struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Content string `yaml:"content"`
}

// ManPage is one entry of the man section.
type ManPage struct {
	Name        string `yaml:"name"`
	Synopsis    string `yaml:"synopsis"`
	Description string `yaml:"description"`
}

// Locale is the parsed form of one locale file.
type Locale struct {
	Messages map[string]string   `yaml:"messages"`
	Motd     []string            `yaml:"motd"`
	Blog     map[string]BlogPost `yaml:"blog"`
	Man      map[string]ManPage  `yaml:"man"`
}

// Catalog is a read-only set of locales keyed by language code.
type Catalog struct {
	locales map[string]*Locale
}

// Load parses the embedded locale files.
func Load() (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	files := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		files[strings.TrimSuffix(e.Name(), ".yaml")] = data
	}
	return Parse(files)
}

// Parse builds a catalog from raw YAML documents keyed by language code.
// The fallback locale must be present.
func Parse(files map[string][]byte) (*Catalog, error) {
	c := &Catalog{locales: make(map[string]*Locale, len(files))}
	for lang, data := range files {
		var loc Locale
		if err := yaml.Unmarshal(data, &loc); err != nil {
			return nil, errors.Errorf("locale %s: %v", lang, err)
		}
		c.locales[lang] = &loc
	}
	if _, ok := c.locales[Fallback]; !ok {
		return nil, errors.Errorf("fallback locale %q missing", Fallback)
	}
	return c, nil
}

// T translates key for lang and fills in params.
// Unknown keys come back unchanged.
func (c *Catalog) T(lang, key string, params Params) string {
	text, ok := c.lookup(lang, key)
	if !ok {
		return key
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
	}
	return text
}

// Has reports whether key resolves in lang or in the fallback locale.
func (c *Catalog) Has(lang, key string) bool {
	_, ok := c.lookup(lang, key)
	return ok
}

// Func binds the catalog to lang.
func (c *Catalog) Func(lang string) Func {
	return func(key string, params Params) string {
		return c.T(lang, key, params)
	}
}

// Supported reports whether a locale file exists for lang.
func (c *Catalog) Supported(lang string) bool {
	_, ok := c.locales[lang]
	return ok
}

// Langs returns the available language codes, sorted.
func (c *Catalog) Langs() []string {
	langs := make([]string, 0, len(c.locales))
	for lang := range c.locales {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Motd returns the message-of-the-day pool for lang.
func (c *Catalog) Motd(lang string) []string {
	if loc, ok := c.locales[lang]; ok && len(loc.Motd) > 0 {
		return loc.Motd
	}
	return c.locales[Fallback].Motd
}

// Blog returns the blog posts for lang keyed by slug.
func (c *Catalog) Blog(lang string) map[string]BlogPost {
	if loc, ok := c.locales[lang]; ok && len(loc.Blog) > 0 {
		return loc.Blog
	}
	return c.locales[Fallback].Blog
}

// Man returns the man pages for lang keyed by command name.
func (c *Catalog) Man(lang string) map[string]ManPage {
	if loc, ok := c.locales[lang]; ok && len(loc.Man) > 0 {
		return loc.Man
	}
	return c.locales[Fallback].Man
}

func (c *Catalog) lookup(lang, key string) (string, bool) {
	if loc, ok := c.locales[lang]; ok {
		if text, ok := loc.Messages[key]; ok {
			return text, true
		}
	}
	text, ok := c.locales[Fallback].Messages[key]
	return text, ok
}
