package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"en", "es"}, c.Langs())

	// Every key in the fallback locale exists in every other locale.
	es := c.locales["es"].Messages
	for _, lang := range c.Langs() {
		for key := range es {
			_, ok := c.locales[lang].Messages[key]
			require.Truef(t, ok, "%s missing %q", lang, key)
		}
	}
}

func TestTranslate(t *testing.T) {
	c, err := Parse(map[string][]byte{
		"es": []byte("messages:\n  hello: \"hola {name}, {name}\"\n  only_es: \"solo\"\n"),
		"en": []byte("messages:\n  hello: \"hi {name}\"\n"),
	})
	require.NoError(t, err)

	tests := []struct {
		lang   string
		key    string
		params Params
		want   string
	}{
		{"en", "hello", Params{"name": "neo"}, "hi neo"},
		{"es", "hello", Params{"name": "neo"}, "hola neo, neo"},
		{"en", "only_es", nil, "solo"},
		{"fr", "hello", Params{"name": "x"}, "hola x, x"},
		{"en", "nope", nil, "nope"},
		{"en", "hello", Params{"port": 22}, "hi {name}"},
	}

	for _, tt := range tests {
		if got := c.T(tt.lang, tt.key, tt.params); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}

	require.True(t, c.Has("en", "only_es"))
	require.False(t, c.Has("en", "nope"))
	require.Equal(t, "hi 7", c.Func("en")("hello", Params{"name": 7}))
}

func TestParseRequiresFallback(t *testing.T) {
	_, err := Parse(map[string][]byte{"en": []byte("messages: {}\n")})
	require.Error(t, err)

	_, err = Parse(map[string][]byte{"es": []byte("messages: [\n")})
	require.Error(t, err)
}

func TestSectionsFallBack(t *testing.T) {
	c, err := Parse(map[string][]byte{
		"es": []byte(`
motd: ["uno"]
blog:
  post:
    title: "T"
    date: "2024-01-01"
    content: "c"
man:
  ls:
    name: "ls"
    synopsis: "ls"
    description: "d"
`),
		"en": []byte("messages: {}\n"),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"uno"}, c.Motd("en"))
	require.Contains(t, c.Blog("en"), "post")
	require.Equal(t, "ls", c.Man("en")["ls"].Name)
	require.True(t, c.Supported("en"))
	require.False(t, c.Supported("fr"))
}
