// Package i18n holds the display strings of the search UI in English and
// Persian and picks a printer for the configured locale.
package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	ConnectionError = "An error occurred while connecting"
	NoResults       = "No results found."
	LoadMore        = "More results"
	Loading         = "Loading..."
	Placeholder     = "Search in SHEN Core..."
	SearchButton    = "Search"
	FilterAll       = "All"
	FilterImage     = "Images"
	FilterVideo     = "Videos"
	ResultsSummary  = "Found: %s (%s seconds)"
	SearchFailed    = "Search failed"

	JustNow    = "just now"
	MinutesAgo = "%d minutes ago"
	HoursAgo   = "%d hours ago"
	DaysAgo    = "%d days ago"

	// DateLayout is the time.Format layout for dates older than a week.
	DateLayout = "Jan 2, 2006"
)

var persian = map[string]string{
	ConnectionError: "خطایی در برقراری ارتباط رخ داد",
	NoResults:       "نتیجه‌ای یافت نشد.",
	LoadMore:        "نتایج بیشتر",
	Loading:         "در حال بارگذاری...",
	Placeholder:     "جستجو در SHEN Core...",
	SearchButton:    "جستجو",
	FilterAll:       "همه",
	FilterImage:     "تصاویر",
	FilterVideo:     "ویدیوها",
	ResultsSummary:  "یافت شده: %s (%s ثانیه)",
	SearchFailed:    "جستجو ناموفق بود",
	JustNow:         "همین الان",
	MinutesAgo:      "%d دقیقه پیش",
	HoursAgo:        "%d ساعت پیش",
	DaysAgo:         "%d روز پیش",
	DateLayout:      "2006/01/02",
}

// englishSingular holds the one-unit forms of the relative time messages.
var englishSingular = map[string]string{
	MinutesAgo: "1 minute ago",
	HoursAgo:   "1 hour ago",
	DaysAgo:    "1 day ago",
}

var (
	supported = []language.Tag{language.English, language.Persian}
	matcher   = language.NewMatcher(supported)
	cat       = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		ConnectionError, NoResults, LoadMore, Loading, Placeholder,
		SearchButton, FilterAll, FilterImage, FilterVideo, ResultsSummary, SearchFailed,
		JustNow, DateLayout,
	} {
		// English strings are their own keys; SetString only fails on malformed tags.
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Persian, key, persian[key])
	}
	for _, key := range []string{MinutesAgo, HoursAgo, DaysAgo} {
		_ = b.Set(language.English, key, plural.Selectf(1, "%d",
			"=1", englishSingular[key],
			plural.Other, key,
		))
		_ = b.SetString(language.Persian, key, persian[key])
	}
	return b
}

// Tag resolves a locale string such as "fa", "fa-IR" or "en-US" to one of
// the supported languages. Unknown or empty locales resolve to English.
func Tag(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Printer returns a message printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Tag(locale), message.Catalog(cat))
}

// Direction returns the text direction for locale, "rtl" or "ltr".
func Direction(locale string) string {
	if Tag(locale) == language.Persian {
		return "rtl"
	}
	return "ltr"
}

// Lang returns the BCP 47 string for the resolved locale, for the html lang attribute.
func Lang(locale string) string {
	return Tag(locale).String()
}
