package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-postmd/internal/yamlutil"
)

type postMeta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
	Draft bool     `yaml:"draft"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		want    postMeta
	}{
		{
			name: "valid YAML",
			data: []byte("title: Hello\ntags: [go, web]\ndraft: true"),
			dest: &postMeta{},
			want: postMeta{Title: "Hello", Tags: []string{"go", "web"}, Draft: true},
		},
		{
			name: "unknown fields ignored",
			data: []byte("title: Hello\nauthor: someone"),
			dest: &postMeta{},
			want: postMeta{Title: "Hello"},
		},
		{
			name: "unicode content",
			data: []byte("title: 안녕하세요"),
			dest: &postMeta{},
			want: postMeta{Title: "안녕하세요"},
		},
		{
			name:    "empty data",
			data:    nil,
			dest:    &postMeta{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := *tt.dest.(*postMeta)
			if got.Title != tt.want.Title || got.Draft != tt.want.Draft || strings.Join(got.Tags, ",") != strings.Join(tt.want.Tags, ",") {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshal_SyntaxErrorPrefixed(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("title: [unclosed"), &postMeta{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		t.Parallel()

		var m postMeta
		if err := yamlutil.UnmarshalStrict([]byte("title: strict"), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Title != "strict" {
			t.Errorf("Title = %q, want %q", m.Title, "strict")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var m postMeta
		err := yamlutil.UnmarshalStrict([]byte("title: x\nunknown: y"), &m)
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var m postMeta
		if err := yamlutil.UnmarshalStrict(nil, &m); !errors.Is(err, yamlutil.ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
	})
}

func TestUnmarshalOptional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		dest    any
		want    string
		wantErr error
	}{
		{name: "blank input is a no-op", data: "  \n\t\n", dest: &postMeta{Title: "kept"}, want: "kept"},
		{name: "empty input is a no-op", data: "", dest: &postMeta{Title: "kept"}, want: "kept"},
		{name: "content decodes", data: "title: new", dest: &postMeta{}, want: "new"},
		{name: "nil destination", data: "", dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalOptional([]byte(tt.data), tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.dest.(*postMeta).Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&postMeta{Title: "out", Draft: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(data)
	for _, want := range []string{"title: out", "draft: true"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got: %s", want, s)
		}
	}
}

// Modifies the global MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })
	yamlutil.MaxInputSize = 100

	atLimit := []byte("title: x\n" + strings.Repeat("#", 91))
	if err := yamlutil.Unmarshal(atLimit, &postMeta{}); err != nil {
		t.Errorf("input at limit: unexpected error: %v", err)
	}

	over := append(atLimit, '#')
	for name, fn := range map[string]func([]byte, any) error{
		"Unmarshal":         yamlutil.Unmarshal,
		"UnmarshalStrict":   yamlutil.UnmarshalStrict,
		"UnmarshalOptional": yamlutil.UnmarshalOptional,
	} {
		err := fn(over, &postMeta{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s: error = %v, want ErrInputTooLarge", name, err)
		}
		if err != nil && !strings.Contains(err.Error(), "101 bytes (max 100)") {
			t.Errorf("%s: error should name sizes, got %q", name, err)
		}
	}
}
