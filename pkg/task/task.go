package task

import (
	"slices"
	"unicode/utf8"
)

// Task is a unit of work with an identifier, a display title, and the IDs of
// the tasks it depends on (its prerequisites).
//
// Dependencies may be empty, may repeat, and may reference IDs that are not
// part of the working set. Consumers must tolerate all three.
type Task struct {
	ID           int    `json:"id" toml:"id" yaml:"id" bson:"id"`
	Title        string `json:"title" toml:"title" yaml:"title" bson:"title"`
	Dependencies []int  `json:"dependencies" toml:"dependencies" yaml:"dependencies" bson:"dependencies"`
}

// DependsOn reports whether t lists id among its dependencies.
func (t Task) DependsOn(id int) bool { return slices.Contains(t.Dependencies, id) }

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}

// Label returns the title shortened to at most limit runes, with "..."
// appended when it was cut. A limit of zero or less disables truncation.
func (t Task) Label(limit int) string {
	if limit <= 0 || utf8.RuneCountInString(t.Title) <= limit {
		return t.Title
	}
	return string([]rune(t.Title)[:limit]) + "..."
}

// Clone returns a deep copy of a task list.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
