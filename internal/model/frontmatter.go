package model

// TaskFrontMatter is the editable header of a task document opened in $EDITOR.
// The body below the front matter is the task text.
type TaskFrontMatter struct {
	ID        int64  `yaml:"id"`
	Deadline  string `yaml:"deadline"`
	Priority  string `yaml:"priority"`
	Category  string `yaml:"category"`
	Alarm     string `yaml:"alarm"`
	Completed bool   `yaml:"completed"`
	CreatedAt string `yaml:"created_at"`
}
