package format

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"
)

type row struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	EditText  string `json:"editText"`
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	v := map[string]any{"data": []row{{ID: "a", Completed: true, EditText: "x"}}}
	tests := []struct {
		format string
		pretty bool
		want   string
	}{
		{format: "", want: `{"data":[{"id":"a","completed":true,"editText":"x"}]}` + "\n"},
		{format: "edn", want: `{:data [{:completed true :edit-text "x" :id "a"}]}` + "\n"},
		{format: "edn", pretty: true, want: "{\n  :data [\n    {\n      :completed true\n      :edit-text \"x\"\n      :id \"a\"\n    }\n  ]\n}\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(&buf, v, tt.format, tt.pretty); err != nil {
			t.Fatalf("Write(%q): %v", tt.format, err)
		}
		if got := buf.String(); got != tt.want {
			t.Fatalf("Write(%q, pretty=%v):\ngot:  %q\nwant: %q", tt.format, tt.pretty, got, tt.want)
		}
	}
}

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": row{ID: "a", EditText: "x"}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got struct {
		Data map[string]any `yaml:"data"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal(%q): %v", buf.String(), err)
	}
	if got.Data["editText"] != "x" || got.Data["id"] != "a" || got.Data["completed"] != false {
		t.Fatalf("unexpected yaml payload: %#v\n%s", got.Data, buf.String())
	}
}

func TestWrite_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatalf("expected error for xml")
	}
	if err := Validate("YML"); err != nil {
		t.Fatalf("Validate(YML): %v", err)
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"id":          ":id",
		"selectedKey": ":selected-key",
		"session_id":  ":session-id",
	} {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q) = %q, want %q", in, got, want)
		}
	}
}
