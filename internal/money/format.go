package money

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders minor units for display, e.g. Format(48997, "USD", "en") => "$489.97"
// and Format(12345, "JPY", "ja") => "￥12,345". Symbol, grouping and decimal
// separator come from CLDR data for the language.
func Format(a Amount, code, lang string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	p := message.NewPrinter(resolveTag(lang))

	minor := int64(a)
	neg := minor < 0
	exp := Exponent(code)
	div := int64(1)
	for i := int32(0); i < exp; i++ {
		div *= 10
	}
	// Split before negating so math.MinInt64 keeps its magnitude.
	major, frac := minor/div, minor%div
	if neg {
		major, frac = -major, -frac
	}

	body := p.Sprintf("%d", uint64(major))
	if exp > 0 {
		body += decimalSeparator(p) + fmt.Sprintf("%0*d", int(exp), frac)
	}

	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = p.Sprint(currency.Symbol(unit))
	}
	if r := []rune(symbol); len(r) > 0 && unicode.IsLetter(r[len(r)-1]) {
		symbol += " "
	}
	if neg {
		return "-" + symbol + body
	}
	return symbol + body
}

// Free renders a zero amount as the given label instead of "$0.00".
func Free(a Amount, code, lang, label string) string {
	if a == 0 && label != "" {
		return label
	}
	return Format(a, code, lang)
}

// decimalSeparator extracts the language's decimal mark from a localized 1.5.
func decimalSeparator(p *message.Printer) string {
	sep := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 1.5), "1"), "5")
	if sep == "" {
		return "."
	}
	return sep
}

func resolveTag(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}
