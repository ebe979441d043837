// Package tasks is the row type shown by the gridview command.
package tasks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drake/componentgrid/grid"
	"github.com/drake/componentgrid/ui/style"
	"github.com/drake/componentgrid/ui/tui/widget"
)

// Task is one row of the task grid.
type Task struct {
	ID       int      `yaml:"id"`
	Title    string   `yaml:"title"`
	Owner    string   `yaml:"owner"`
	Progress float64  `yaml:"progress"`
	Done     bool     `yaml:"done"`
	Tags     []string `yaml:"tags,omitempty"`
}

type file struct {
	Tasks []Task `yaml:"tasks"`
}

// Key is the row identity used by the grid.
func Key(t Task) int { return t.ID }

// Toggle flips Done. A task marked done is complete.
func Toggle(t Task) Task {
	t.Done = !t.Done
	if t.Done {
		t.Progress = 1
	}
	return t
}

// Fields exposes a task to Lua column functions.
func Fields(t Task) map[string]any {
	return map[string]any{
		"id":       t.ID,
		"title":    t.Title,
		"owner":    t.Owner,
		"progress": t.Progress,
		"done":     t.Done,
		"tags":     t.Tags,
	}
}

// Load decodes a YAML task list. IDs must be positive and unique.
func Load(r io.Reader) ([]Task, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[int]bool, len(f.Tasks))
	for i, t := range f.Tasks {
		if t.ID <= 0 {
			return nil, fmt.Errorf("task %d: id must be positive", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("task %d: duplicate id %d", i, t.ID)
		}
		seen[t.ID] = true
	}
	return f.Tasks, nil
}

// LoadFile reads tasks from a YAML file.
func LoadFile(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Sample returns the built-in demo rows.
func Sample() []Task {
	return []Task{
		{ID: 1, Title: "Wire row store", Owner: "ann", Progress: 1, Done: true, Tags: []string{"core"}},
		{ID: 2, Title: "Focus-preserving refresh", Owner: "bo", Progress: 0.6, Tags: []string{"core", "ui"}},
		{ID: 3, Title: "Lua columns", Owner: "cy", Progress: 0.3, Tags: []string{"lua"}},
		{ID: 4, Title: "Table scrolling", Owner: "ann", Progress: 0.8, Tags: []string{"ui"}},
		{ID: 5, Title: "Debug monitor", Owner: "dee", Progress: 0},
	}
}

// Columns returns the property columns of the task table.
func Columns() []widget.Column[Task] {
	return []widget.Column[Task]{
		{ID: "id", Title: "#", Width: 3, Value: func(t Task) string { return strconv.Itoa(t.ID) }},
		widget.TextColumn("title", "Title", func(t Task) string { return t.Title }),
		widget.TextColumn("owner", "Owner", func(t Task) string { return t.Owner }),
	}
}

// InstallComponents registers the built-in component columns.
func InstallComponents(v *grid.View[Task, int], styles style.Styles) error {
	columns := []struct {
		id  string
		gen grid.Generator[Task]
	}{
		{"done", func(t Task) grid.Component {
			return widget.NewCheck(t.Done, styles)
		}},
		{"progress", func(t Task) grid.Component {
			return widget.NewMeter(t.Progress, 10, styles)
		}},
		{"tags", func(t Task) grid.Component {
			if len(t.Tags) == 0 {
				return widget.Tone("-", "muted", styles)
			}
			badges := make([]string, len(t.Tags))
			for i, tag := range t.Tags {
				badges[i] = widget.Badge(tag, styles).View()
			}
			return widget.Text(strings.Join(badges, " "))
		}},
	}
	for _, c := range columns {
		if err := v.AddComponentColumn(c.id, c.gen); err != nil {
			return err
		}
	}
	return nil
}
