package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	want := []string{"actions", "keys", "state"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics: got %v want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Keys ")
	if !ok || !strings.HasPrefix(body, "# Keys") {
		t.Fatalf("Get(keys): ok=%v body=%q", ok, body)
	}
	for _, topic := range []string{"", "nope", "../docs"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("Get(%q) should fail", topic)
		}
	}
}

func TestRender_NoTTYStyle(t *testing.T) {
	t.Parallel()

	body, _ := Get("actions")
	out, err := Render(body, "notty", 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Journal entries") {
		t.Fatalf("rendered docs lost content:\n%s", out)
	}
}
