package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type languageContextKey struct{}

// Language resolves the display language from ?lang= or Accept-Language,
// matching against supported. The first supported language is the fallback.
func Language(supported ...string) func(http.Handler) http.Handler {
	tags := make([]language.Tag, 0, len(supported)+1)
	seen := map[language.Tag]bool{}
	for _, s := range supported {
		tag, err := language.Parse(strings.TrimSpace(s))
		if err != nil || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = append(tags, language.English)
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, idx := language.MatchStrings(matcher, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
			base, _ := tags[idx].Base()
			w.Header().Add("Vary", "Accept-Language")
			ctx := context.WithValue(r.Context(), languageContextKey{}, base.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LanguageFromContext returns the negotiated language, or fallback when
// Language did not run.
func LanguageFromContext(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(languageContextKey{}).(string); ok && lang != "" {
		return lang
	}
	return fallback
}
