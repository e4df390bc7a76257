package docs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopicsAreListed(t *testing.T) {
	topics := Topics()
	for _, want := range []string{"import-formats", "linked-transactions", "holding-period"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q missing from %v", want, topics)
		}
	}
}

func TestUnknownTopicIsEmpty(t *testing.T) {
	if got := Topic("no-such-topic"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

// Every topic must be valid markdown and start with a level-one heading,
// since the CLI renders it straight to the terminal.
func TestTopicsAreWellFormed(t *testing.T) {
	md := goldmark.New()
	for _, name := range Topics() {
		t.Run(name, func(t *testing.T) {
			source := []byte(Topic(name))
			if len(source) == 0 {
				t.Fatal("topic is empty")
			}

			var buf bytes.Buffer
			if err := md.Convert(source, &buf); err != nil {
				t.Fatalf("invalid markdown: %v", err)
			}

			doc := md.Parser().Parse(text.NewReader(source))
			first := doc.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok || heading.Level != 1 {
				t.Error("topic does not start with a level-one heading")
			}
			if !strings.HasSuffix(string(source), "\n") {
				t.Error("topic does not end with a newline")
			}
		})
	}
}
