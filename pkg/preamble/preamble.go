package preamble

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the profile file looked up under each preamble directory.
const FileName = "PREAMBLE.md"

// Profile is a named instruction prepended to every user line.
type Profile struct {
	Name        string
	Description string
	Text        string
	Path        string
}

// Builtin returns the profiles shipped with the binary.
func Builtin() []*Profile {
	return []*Profile{
		{
			Name:        "sql",
			Description: "Turn a sentence into a SQL query",
			Text:        "Write a SQL query according to the sentence",
		},
		{
			Name:        "rust-qa",
			Description: "General Q&A with a Rust aside",
			Text: "Answer the following question accurately, but find a funny way to mention " +
				"the Rust programming language in your response.",
		},
	}
}

// profileFrontMatter mirrors the YAML front matter in PREAMBLE.md.
type profileFrontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func loadFromDir(dir string) ([]*Profile, error) {
	var profiles []*Profile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), FileName) {
			p, err := parseFile(path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			profiles = append(profiles, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// LoadFromDirs loads and parses all PREAMBLE.md files under the provided directories.
func LoadFromDirs(dirs []string) ([]*Profile, error) {
	var profiles []*Profile
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		found, err := loadFromDir(dir)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, found...)
	}

	sort.Slice(profiles, func(i, j int) bool {
		left := strings.ToLower(profiles[i].Name)
		right := strings.ToLower(profiles[j].Name)
		if left == right {
			return strings.ToLower(profiles[i].Path) < strings.ToLower(profiles[j].Path)
		}
		return left < right
	})

	return profiles, nil
}

// Resolve returns the text of the named profile. Loaded profiles shadow builtins.
func Resolve(name string, profiles []*Profile) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("preamble name is empty")
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p.Text, nil
		}
	}
	for _, p := range Builtin() {
		if strings.EqualFold(p.Name, name) {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("unknown preamble %q", name)
}

func parseFile(path string) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := parseFrontMatter(content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fm.Name) == "" {
		return nil, fmt.Errorf("missing front matter name")
	}
	text := strings.Join(strings.Fields(body), " ")
	if text == "" {
		return nil, fmt.Errorf("empty preamble body")
	}

	return &Profile{
		Name:        strings.TrimSpace(fm.Name),
		Description: strings.TrimSpace(fm.Description),
		Text:        text,
		Path:        path,
	}, nil
}

// parseFrontMatter splits YAML front matter from the body that follows it.
func parseFrontMatter(content []byte) (profileFrontMatter, string, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 3 || strings.TrimSpace(lines[0]) != "---" {
		return profileFrontMatter{}, "", fmt.Errorf("missing YAML front matter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return profileFrontMatter{}, "", fmt.Errorf("unterminated YAML front matter")
	}

	fmText := strings.Join(lines[1:end], "\n")
	var fm profileFrontMatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return profileFrontMatter{}, "", err
	}
	return fm, strings.Join(lines[end+1:], "\n"), nil
}
