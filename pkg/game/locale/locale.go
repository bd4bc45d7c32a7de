// Package locale holds the console message catalogs.
package locale

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used until Use picks another catalog
const DefaultLanguage = "en"

//go:embed locales/*.po
var catalogs embed.FS

// current maps message keys to the translated text of the active catalog
var current atomic.Pointer[map[string]string]

func init() {
	if err := Use(DefaultLanguage); err != nil {
		panic(err)
	}
}

// Languages lists the embedded catalogs
func Languages() ([]string, error) {
	entries, err := catalogs.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	var langs []string
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	slices.Sort(langs)
	return langs, nil
}

// Use switches every later lookup to the catalog for lang
func Use(lang string) error {
	data, err := catalogs.ReadFile(path.Join("locales", lang+".po"))
	if err != nil {
		langs, listErr := Languages()
		if listErr != nil {
			return listErr
		}
		return fmt.Errorf("unknown language %q (have %s)", lang, strings.Join(langs, ", "))
	}

	po := gotext.NewPo()
	po.Parse(data)

	messages := make(map[string]string)
	for key, tr := range po.GetDomain().GetTranslations() {
		if key != "" {
			messages[key] = tr.Get()
		}
	}
	current.Store(&messages)
	return nil
}

// Get returns the translation of key. Unknown keys come back unchanged.
func Get(key string) string {
	if msg, ok := (*current.Load())[key]; ok {
		return msg
	}
	return key
}

// Format translates key and fills the translation's verbs with vars
func Format(key string, vars ...any) string {
	return fmt.Sprintf(Get(key), vars...)
}
