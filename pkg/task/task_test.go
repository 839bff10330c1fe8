package task

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		title string
		limit int
		want  string
	}{
		{"short", "Design", 14, "Design"},
		{"exact", "abcdefghijklmn", 14, "abcdefghijklmn"},
		{"long", "Write the integration tests", 14, "Write the inte..."},
		{"unicode", "Überprüfung der Abhängigkeiten", 5, "Überp..."},
		{"no limit", "Write the integration tests", 0, "Write the integration tests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Task{Title: tt.title}.Label(tt.limit)
			if got != tt.want {
				t.Errorf("Label(%d) = %q, want %q", tt.limit, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	orig := []Task{{ID: 1, Title: "a", Dependencies: []int{2, 3}}}
	cp := Clone(orig)
	cp[0].Dependencies[0] = 99

	if orig[0].Dependencies[0] != 2 {
		t.Errorf("Clone shares dependency slice with original")
	}
	if !orig[0].DependsOn(3) || orig[0].DependsOn(99) {
		t.Errorf("DependsOn mismatch on %v", orig[0].Dependencies)
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare array", `[{"id":1,"title":"a","dependencies":[]},{"id":2,"title":"b","dependencies":[1]}]`},
		{"wrapped", `{"tasks":[{"id":1,"title":"a"},{"id":2,"title":"b","dependencies":[1]}]}`},
		{"leading space", "\n  [{\"id\":1,\"title\":\"a\"},{\"id\":2,\"title\":\"b\",\"dependencies\":[1]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Read(strings.NewReader(tt.input), FormatJSON)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if len(tasks) != 2 {
				t.Fatalf("got %d tasks, want 2", len(tasks))
			}
			if !slices.Equal(tasks[1].Dependencies, []int{1}) {
				t.Errorf("tasks[1].Dependencies = %v, want [1]", tasks[1].Dependencies)
			}
		})
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("{"), FormatJSON); err == nil {
		t.Error("expected decode error for truncated json")
	}
	if _, err := Read(strings.NewReader(""), "xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Read(xml) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRoundTripFormats(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "Design", Dependencies: []int{}},
		{ID: 2, Title: "Build", Dependencies: []int{1}},
		{ID: 3, Title: "Ship", Dependencies: []int{2, 1}},
	}
	for _, format := range []string{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tasks, format); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if len(got) != len(tasks) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tasks))
			}
			for i := range tasks {
				if got[i].ID != tasks[i].ID || got[i].Title != tasks[i].Title {
					t.Errorf("task %d = %+v, want %+v", i, got[i], tasks[i])
				}
				if len(got[i].Dependencies) != len(tasks[i].Dependencies) {
					t.Errorf("task %d deps = %v, want %v", i, got[i].Dependencies, tasks[i].Dependencies)
				}
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tasks := []Task{{ID: 7, Title: "Only", Dependencies: []int{7}}}
	for _, name := range []string{"tasks.json", "tasks.toml", "tasks.yml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(tasks, path); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", name, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", name, err)
		}
		if len(got) != 1 || got[0].ID != 7 || !got[0].DependsOn(7) {
			t.Errorf("ReadFile(%s) = %+v", name, got)
		}
	}
	if _, err := ReadFile(filepath.Join(dir, "tasks.csv")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadFile(csv) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := []Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Dependencies: []int{1}}}
	b := Clone(a)
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal task lists should have equal fingerprints")
	}
	b[1].Dependencies = append(b[1].Dependencies, 3)
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fingerprint should change when dependencies change")
	}
	c := []Task{{ID: 1, Title: "ab"}, {ID: 2, Title: ""}}
	d := []Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	if Fingerprint(c) == Fingerprint(d) {
		t.Error("title boundaries should be part of the fingerprint")
	}
	if got := len(Fingerprint(nil)); got != 16 {
		t.Errorf("fingerprint length = %d, want 16", got)
	}
}
