package locale

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetings(t *testing.T) {
	tests := []struct {
		lang, id, want string
	}{
		{"en", "GreetingMorning", "Good morning"},
		{"en", "GreetingEvening", "Good evening"},
		{"vi", "GreetingMorning", "Chào buổi sáng"},
		{"vi", "GreetingAfternoon", "Chào buổi chiều"},
		{"vi", "GreetingEvening", "Chào buổi tối"},
	}
	for _, tc := range tests {
		t.Run(tc.lang+"/"+tc.id, func(t *testing.T) {
			l := MustNew(tc.lang)
			assert.Equal(t, tc.want, l.T(tc.id))
		})
	}
}

func TestTemplateData(t *testing.T) {
	l := MustNew("en")
	got := l.TData("StepOf", map[string]any{"Current": 2, "Total": 5})
	assert.Equal(t, "Step 2 of 5", got)
}

func TestUnknownIDRendersItself(t *testing.T) {
	assert.Equal(t, "NoSuchMessage", MustNew("vi").T("NoSuchMessage"))
}

func TestRegionalTagUsesBase(t *testing.T) {
	l, err := New("vi-VN")
	require.NoError(t, err)
	assert.Equal(t, "vi", l.Lang())
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := New("fr")
	assert.Error(t, err)
	_, err = New("not a tag!")
	assert.Error(t, err)
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	load := func(file string) map[string]string {
		var m map[string]string
		_, err := toml.DecodeFS(catalogs, file, &m)
		require.NoError(t, err)
		return m
	}
	en := load("active.en.toml")
	vi := load("active.vi.toml")
	for k := range en {
		assert.Contains(t, vi, k, "vi catalog")
	}
	for k := range vi {
		assert.Contains(t, en, k, "en catalog")
	}
}
