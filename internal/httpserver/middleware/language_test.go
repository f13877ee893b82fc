package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLanguageNegotiation(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{name: "fallback", want: "en"},
		{name: "accept header", accept: "ja-JP,ja;q=0.9,en;q=0.5", want: "ja"},
		{name: "quality order", accept: "fr;q=0.2, ja;q=0.8", want: "ja"},
		{name: "unsupported", accept: "fr-FR", want: "en"},
		{name: "query wins", query: "ja", accept: "en-US", want: "ja"},
	}

	handler := Language("en", "ja", "en")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			h := handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = LanguageFromContext(r.Context(), "xx")
			}))
			target := "/"
			if tc.query != "" {
				target += "?lang=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if rr.Header().Get("Vary") != "Accept-Language" {
				t.Fatalf("expected Vary header")
			}
		})
	}
}

func TestLanguageFromContextFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LanguageFromContext(req.Context(), "de"); got != "de" {
		t.Fatalf("expected fallback, got %s", got)
	}
}
