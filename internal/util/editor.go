package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nakachan-ing/zentasks/internal/model"
	"gopkg.in/yaml.v3"
)

func OpenEditor(filePath string, config model.Config) error {
	c := exec.Command(config.Editor, filePath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor (%s): %w", filePath, err)
	}
	return nil
}

// RenderTaskDocument writes a task as YAML front matter followed by its text.
func RenderTaskDocument(task model.Task) (string, error) {
	frontMatter := model.TaskFrontMatter{
		ID:        task.ID,
		Deadline:  task.DeadlineTime,
		Priority:  string(task.Priority),
		Category:  string(task.Category),
		Alarm:     task.AlarmTime,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}

	frontMatterBytes, err := yaml.Marshal(&frontMatter)
	if err != nil {
		return "", fmt.Errorf("failed to convert to YAML: %w", err)
	}

	// Preserve `---` and merge YAML with body
	return fmt.Sprintf("---\n%s---\n\n%s\n", string(frontMatterBytes), task.Text), nil
}

func ParseTaskDocument(content string) (model.TaskFrontMatter, string, error) {
	if !strings.HasPrefix(content, "---") {
		return model.TaskFrontMatter{}, content, fmt.Errorf("❌ Front matter not found")
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return model.TaskFrontMatter{}, content, fmt.Errorf("❌ Invalid front matter format")
	}

	frontMatterStr := strings.TrimSpace(parts[1])
	body := strings.TrimSpace(parts[2])

	// Parse YAML
	var frontMatter model.TaskFrontMatter
	if err := yaml.Unmarshal([]byte(frontMatterStr), &frontMatter); err != nil {
		return model.TaskFrontMatter{}, content, fmt.Errorf("❌ Failed to parse front matter: %w", err)
	}

	return frontMatter, body, nil
}

// EditTaskDocument opens the task in the configured editor and returns what the
// user saved.
func EditTaskDocument(task model.Task, config model.Config) (model.TaskFrontMatter, string, error) {
	doc, err := RenderTaskDocument(task)
	if err != nil {
		return model.TaskFrontMatter{}, "", err
	}

	tmp, err := os.CreateTemp("", fmt.Sprintf("zentasks-%d-*.md", task.ID))
	if err != nil {
		return model.TaskFrontMatter{}, "", fmt.Errorf("❌ Failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return model.TaskFrontMatter{}, "", fmt.Errorf("❌ Failed to write temp file: %w", err)
	}
	tmp.Close()

	if err := OpenEditor(tmp.Name(), config); err != nil {
		return model.TaskFrontMatter{}, "", err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return model.TaskFrontMatter{}, "", fmt.Errorf("❌ Failed to read edited task: %w", err)
	}
	return ParseTaskDocument(string(edited))
}
