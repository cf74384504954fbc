package docs

import (
	"strings"
	"testing"
)

func TestAll_TopicsWellFormed(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("no topics registered")
	}
	seen := make(map[string]bool)
	for _, topic := range all {
		if topic.Name == "" || topic.Title == "" || topic.Summary == "" {
			t.Fatalf("topic %+v missing metadata", topic)
		}
		if strings.TrimSpace(topic.Content) == "" {
			t.Fatalf("topic %q has empty content", topic.Name)
		}
		if seen[topic.Name] {
			t.Fatalf("duplicate topic %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestGet(t *testing.T) {
	topic, err := Get("tasks")
	if err != nil {
		t.Fatal(err)
	}
	if topic.Name != "tasks" {
		t.Fatalf("Name = %q", topic.Name)
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}
