package filter

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fedisieve/fedisieve/internal/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		opts  types.Options
		input string
		want  string
	}{
		{
			name:  "lowercases",
			opts:  types.DefaultOptions(),
			input: "Hello WORLD",
			want:  "hello world",
		},
		{
			name:  "strips diacritics after decomposition",
			opts:  types.DefaultOptions(),
			input: "café",
			want:  "cafe",
		},
		{
			name:  "strips precomposed uppercase diacritics",
			opts:  types.DefaultOptions(),
			input: "CRÈME BRÛLÉE",
			want:  "creme brulee",
		},
		{
			name:  "folds compatibility ligature",
			opts:  types.DefaultOptions(),
			input: "ﬁlter",
			want:  "filter",
		},
		{
			name:  "mode none keeps precomposed diacritics",
			opts:  types.Options{Normalize: types.NormalizeNone, StripDiacritics: false, MaxBodyChars: types.DefaultMaxBodyChars},
			input: "Café",
			want:  "café",
		},
		{
			name:  "mode none with strip removes combining marks only",
			opts:  types.Options{Normalize: types.NormalizeNone, StripDiacritics: true, MaxBodyChars: types.DefaultMaxBodyChars},
			input: "café",
			want:  "cafe",
		},
		{
			name:  "empty string",
			opts:  types.DefaultOptions(),
			input: "",
			want:  "",
		},
		{
			name:  "marks outside the diacritics block survive",
			opts:  types.DefaultOptions(),
			input: "aִ", // Hebrew point hiriq, not in U+0300..U+036F
			want:  "aִ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNormalizer(tt.opts).Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecord_BodyCap(t *testing.T) {
	opts := types.DefaultOptions()
	opts.MaxBodyChars = 5
	n := NewNormalizer(opts)

	got := n.Record(types.FieldValues{
		Title: "Title Stays Whole",
		Body:  "Hello spam world",
	})

	if got.Body != "hello" {
		t.Errorf("Body = %q, want %q", got.Body, "hello")
	}
	if got.Title != "title stays whole" {
		t.Errorf("Title = %q, want %q (cap must not apply to title)", got.Title, "title stays whole")
	}
}

func TestRecord_BodyCapZero(t *testing.T) {
	opts := types.DefaultOptions()
	opts.MaxBodyChars = 0
	n := NewNormalizer(opts)

	got := n.Record(types.FieldValues{Body: "anything"})
	if got.Body != "" {
		t.Errorf("Body = %q, want empty with zero cap", got.Body)
	}
}

func TestTruncateRunes_MultiByte(t *testing.T) {
	// Cutting must never split a UTF-8 sequence.
	got := truncateRunes("héllo", 2)
	if got != "hé" {
		t.Errorf("truncateRunes = %q, want %q", got, "hé")
	}
}

// Property-based test: normalization is idempotent over Latin text with
// diacritics. The generator draws from printable ASCII plus the Latin-1
// accented range, which covers every decomposition the engine is
// specified against.
func TestNormalize_PropertyIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, opts := range []types.Options{
		types.DefaultOptions(),
		{Normalize: types.NormalizeNone, StripDiacritics: true, MaxBodyChars: types.DefaultMaxBodyChars},
		{Normalize: types.NormalizeNone, StripDiacritics: false, MaxBodyChars: types.DefaultMaxBodyChars},
	} {
		n := NewNormalizer(opts)
		properties.Property("normalize(normalize(s)) == normalize(s) for "+string(opts.Normalize), prop.ForAll(
			func(runes []rune) bool {
				s := string(runes)
				once := n.Normalize(s)
				return n.Normalize(once) == once
			},
			gen.SliceOf(gen.OneGenOf(gen.RuneRange(' ', '~'), gen.RuneRange('À', 'ÿ'))),
		))
	}

	properties.TestingRun(t)
}

// Property-based test: normalization never panics for arbitrary input.
func TestNormalize_PropertyTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	n := NewNormalizer(types.DefaultOptions())
	properties.Property("normalization is total", prop.ForAll(
		func(s string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Normalize(%q) panicked: %v", s, r)
				}
			}()
			_ = n.Normalize(s)
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
