package shaper

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// undetermined is the BCP 47 tag for an unknown language.
const undetermined = "und"

// MakeStdLanguageRunIterator returns a single run in the language of the
// process locale.
func MakeStdLanguageRunIterator(text string) *TrivialLanguageRunIterator {
	return NewTrivialLanguageRunIterator(processLanguage(os.Getenv), len(text))
}

// processLanguage derives a BCP 47 tag from the POSIX locale variables.
func processLanguage(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			return localeToBCP47(v)
		}
	}
	return undetermined
}

// localeToBCP47 converts a POSIX locale such as "pt_BR.UTF-8@euro" to a
// canonical BCP 47 tag.
func localeToBCP47(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return undetermined
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return undetermined
	}
	return tag.String()
}
