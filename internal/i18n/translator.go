// Package i18n implements the translation collaborator: message lookup with
// positional substitution, locale-aware short dates and number grouping.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
)

//go:embed locales/*.yaml
var builtinFS embed.FS

// FallbackLocale is used when no catalog matches the requested locale.
const FallbackLocale = "en"

const defaultDateFormat = "01/02/2006"

// Catalog is the content of one locale file.
type Catalog struct {
	Locale     string            `yaml:"locale"`
	DateFormat string            `yaml:"date_format"`
	Messages   map[string]string `yaml:"messages"`
}

// Translator resolves message keys for the active locale.
type Translator struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
	builtin  map[string]*Catalog
	dir      string
	want     string
	active   string
	tag      language.Tag
	printer  *message.Printer
	loc      *time.Location
}

// New loads the built-in catalogs, merges any catalogs found in dir and
// selects the closest match for locale.
func New(locale, dir string) (*Translator, error) {
	builtin, err := loadFS(builtinFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in catalogs: %w", err)
	}

	t := &Translator{
		builtin: builtin,
		dir:     dir,
		want:    locale,
		loc:     time.Local,
	}

	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-reads the override directory and re-resolves the locale.
func (t *Translator) Reload() error {
	catalogs := make(map[string]*Catalog, len(t.builtin))
	for k, c := range t.builtin {
		catalogs[k] = cloneCatalog(c)
	}

	if t.dir != "" {
		overrides, err := loadFS(os.DirFS(t.dir), ".")
		if err != nil {
			return fmt.Errorf("failed to load catalogs from %s: %w", t.dir, err)
		}
		for k, c := range overrides {
			merge(catalogs, k, c)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalogs = catalogs
	t.resolve(t.want)
	return nil
}

// SetLocale switches the active locale.
func (t *Translator) SetLocale(locale string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.want = locale
	t.resolve(locale)
}

// resolve picks the catalog closest to locale. Callers hold the write lock.
func (t *Translator) resolve(locale string) {
	keys := make([]string, 0, len(t.catalogs))
	for k := range t.catalogs {
		if k != FallbackLocale {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	// The matcher treats the first tag as the default.
	keys = append([]string{FallbackLocale}, keys...)

	tags := make([]language.Tag, len(keys))
	for i, k := range keys {
		tags[i] = language.Make(k)
	}

	requested, err := language.Parse(locale)
	if err != nil {
		logger.Warn("unknown locale, using fallback", "locale", locale, "error", err)
		requested = language.Make(FallbackLocale)
	}

	_, idx, _ := language.NewMatcher(tags).Match(requested)
	t.active = keys[idx]
	t.tag = tags[idx]
	t.printer = message.NewPrinter(t.tag)
}

// Locale returns the key of the active catalog.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Locales returns the keys of all loaded catalogs.
func (t *Translator) Locales() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.catalogs))
	for k := range t.catalogs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the override directory, if any.
func (t *Translator) Dir() string {
	return t.dir
}

// T returns the localized string for key with %s placeholders replaced by
// args in order. Missing keys fall back to the fallback catalog, then to
// the key itself.
func (t *Translator) T(key string, args ...any) string {
	t.mu.RLock()
	text, ok := t.lookup(t.active, key)
	if !ok {
		text, ok = t.lookup(FallbackLocale, key)
	}
	t.mu.RUnlock()

	if !ok {
		text = key
	}
	return substitute(text, args)
}

func (t *Translator) lookup(locale, key string) (string, bool) {
	c, ok := t.catalogs[locale]
	if !ok {
		return "", false
	}
	text, ok := c.Messages[key]
	return text, ok
}

// SetLocation sets the time zone dates are shown in. Defaults to time.Local.
func (t *Translator) SetLocation(loc *time.Location) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loc = loc
}

// ShortDate formats ts as the locale's numeric short date.
func (t *Translator) ShortDate(ts time.Time) string {
	t.mu.RLock()
	layout := defaultDateFormat
	if c, ok := t.catalogs[t.active]; ok && c.DateFormat != "" {
		layout = c.DateFormat
	}
	loc := t.loc
	t.mu.RUnlock()
	return ts.In(loc).Format(layout)
}

// Number formats n with the locale's digit grouping.
func (t *Translator) Number(n int) string {
	t.mu.RLock()
	p := t.printer
	t.mu.RUnlock()
	return p.Sprintf("%d", n)
}

// substitute replaces each %s in text with the next argument.
func substitute(text string, args []any) string {
	if len(args) == 0 || !strings.Contains(text, "%s") {
		return text
	}

	var b strings.Builder
	rest := text
	for _, arg := range args {
		i := strings.Index(rest, "%s")
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(fmt.Sprint(arg))
		rest = rest[i+2:]
	}
	b.WriteString(rest)
	return b.String()
}

// loadFS reads every *.yaml file under root. The catalog key is the
// "locale" field, or the file name when the field is empty.
func loadFS(fsys fs.FS, root string) (map[string]*Catalog, error) {
	matches, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(root, "*.yaml")))
	if err != nil {
		return nil, err
	}

	catalogs := make(map[string]*Catalog, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var c Catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if c.Locale == "" {
			c.Locale = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		}
		if c.Messages == nil {
			c.Messages = map[string]string{}
		}
		catalogs[c.Locale] = &c
	}
	return catalogs, nil
}

func cloneCatalog(c *Catalog) *Catalog {
	out := &Catalog{
		Locale:     c.Locale,
		DateFormat: c.DateFormat,
		Messages:   make(map[string]string, len(c.Messages)),
	}
	for k, v := range c.Messages {
		out.Messages[k] = v
	}
	return out
}

// merge overlays c onto the catalog stored under key.
func merge(catalogs map[string]*Catalog, key string, c *Catalog) {
	existing, ok := catalogs[key]
	if !ok {
		catalogs[key] = cloneCatalog(c)
		return
	}
	if c.DateFormat != "" {
		existing.DateFormat = c.DateFormat
	}
	for k, v := range c.Messages {
		existing.Messages[k] = v
	}
}
