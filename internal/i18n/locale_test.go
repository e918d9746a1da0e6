package i18n

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		path string
		want Locale
	}{
		{"/en/projects", LocaleEN},
		{"/ar/projects", LocaleAR},
		{"/ar", LocaleAR},
		{"/fr/projects", LocaleEN}, // unsupported → default
		{"/xx/anything", LocaleEN},
		{"/", LocaleEN},
		{"", LocaleEN},
		{"/login", LocaleEN},
		{"/en", LocaleEN},
	}

	for _, tc := range cases {
		if got := Resolve(tc.path); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestHomePath(t *testing.T) {
	if got := HomePath(LocaleAR); got != "/ar/" {
		t.Fatalf("HomePath(ar) = %q", got)
	}
	if got := HomePath(Default); got != "/en/" {
		t.Fatalf("HomePath(default) = %q", got)
	}
}
