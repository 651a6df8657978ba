// Package i18n resolves user-facing strings by language code and message
// key. Locale files are plain key=value lines named <code>.lang; English is
// built in and is the fallback for missing keys and unknown languages.
package i18n

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fallback is the language every lookup falls back to.
const Fallback = "EN"

// Table maps language code to message key to display string.
type Table struct {
	locales map[string]map[string]string
}

// New returns a Table preloaded with the built-in English messages.
func New() *Table {
	return &Table{locales: map[string]map[string]string{
		Fallback: builtinEN(),
	}}
}

// Resolve returns the display string for key in the given language, falling
// back to English and finally to the key itself so a missing translation is
// visible rather than silent.
func (t *Table) Resolve(lang, key string) string {
	if m, ok := t.locales[strings.ToUpper(lang)]; ok {
		if s, ok := m[key]; ok && s != "" {
			return s
		}
	}
	if s, ok := t.locales[Fallback][key]; ok && s != "" {
		return s
	}
	return key
}

// LoadDir merges every <code>.lang file found in dir into the table. A
// missing directory is not an error; individual unreadable files are.
func (t *Table) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lang") {
			continue
		}
		code := strings.ToUpper(strings.TrimSuffix(e.Name(), ".lang"))
		if err := t.loadFile(code, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) loadFile(code, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening locale %s: %w", path, err)
	}
	defer f.Close()

	m := t.locales[code]
	if m == nil {
		m = make(map[string]string)
		t.locales[code] = m
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading locale %s: %w", path, err)
	}
	return nil
}

func builtinEN() map[string]string {
	return map[string]string{
		"saved_to":            "Saved to ",
		"loaded_from":         "Loaded from ",
		"fresh_account":       "No save file found; starting with a fresh account.",
		"summary_title":       "==== Account Summary ====",
		"total_balance":       "Total balance: ",
		"category_balances":   "Category balances:",
		"allocations":         "Allocations (%):",
		"interest_entries":    "Interest entries:",
		"schedules":           "Scheduled transactions:",
		"recent_transactions": "Recent transactions:",
		"processed_through":   "Processed schedules and interest through ",
		"dry_run":             "Dry run: no changes were kept.",
		"would_post":          "Would post:",
		"nothing_to_post":     "Nothing to post.",
		"imported":            "Imported transactions: ",
	}
}
