// Package docs embeds the user manual topics shown by the `topic` command.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed *.md
var topicFS embed.FS

// Topics returns the available topic names, sorted.
func Topics() []string {
	entries, err := topicFS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Topic returns the markdown content of one topic, or "" if unknown.
func Topic(name string) string {
	data, err := topicFS.ReadFile(name + ".md")
	if err != nil {
		return ""
	}
	return string(data)
}
