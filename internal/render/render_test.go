package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"envlist/internal/constants"
	"envlist/internal/envlines"
	"envlist/internal/testutils"

	"gopkg.in/yaml.v3"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Scenario1", "A=1\n#comment\nB=2", `["A=1","B=2"]`},
		{"OnlyComments", "#only comments\n#another", `[]`},
		{"EmptyFile", "", `[]`},
		{"LeadingSpace", " #not a comment", `[" #not a comment"]`},
		{"HTMLCharacters", "URL=<a&b>", `["URL=<a&b>"]`},
		{"Quotes", `A="x"`, `["A=\"x\""]`},
		{"CarriageReturn", "A=1\r\nB=2", `["A=1\r","B=2"]`},
		{"Tab", "A=\t1", `["A=\t1"]`},
		{"LineSeparator", "A=1\u2028B", `["A=1\u2028B"]`},
		{"ParagraphSeparator", "A=1\u2029B", `["A=1\u2029B"]`},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		out, err := JSON(envlines.Filter(tt.input))
		if err != nil {
			t.Fatalf("JSON(%q) error: %v", tt.input, err)
		}
		cases = append(cases, testutils.NewCase(tt.name, tt.input, tt.expected+"\n", string(out)))
	}
	testutils.PrintTestTable(t, cases)
}

func TestJSONNil(t *testing.T) {
	out, err := JSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[]\n" {
		t.Errorf("JSON(nil) = %q; want %q", out, "[]\n")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	lines := envlines.Filter("A=1\n#x\n\nB=\"two\"\\\nC=é<>&\r")
	out, err := JSON(lines)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []string
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !slices.Equal(decoded, lines) {
		t.Errorf("decoded %q; want %q", decoded, lines)
	}
}

func TestYAML(t *testing.T) {
	lines := []string{"TZ=UTC", "", "URL=http://x:8080", " #kept"}
	out, err := YAML(lines)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []string
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if !slices.Equal(decoded, lines) {
		t.Errorf("decoded %q; want %q", decoded, lines)
	}

	empty, err := YAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(empty)) != "[]" {
		t.Errorf("YAML(nil) = %q; want []", empty)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	lines := []string{"A=1", "B=2"}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(ctx, &buf, constants.FormatJSON, lines, Options{}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "[\"A=1\",\"B=2\"]\n" {
			t.Errorf("Render(json) = %q", buf.String())
		}
	})

	t.Run("Compose", func(t *testing.T) {
		var buf bytes.Buffer
		opts := Options{Service: "web", WorkingDir: t.TempDir()}
		if err := Render(ctx, &buf, constants.FormatCompose, lines, opts); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "web:") || !strings.Contains(buf.String(), "environment:") {
			t.Errorf("unexpected compose output:\n%s", buf.String())
		}
	})

	t.Run("ComposeDefaultService", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(ctx, &buf, constants.FormatCompose, lines, Options{WorkingDir: t.TempDir()}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), constants.DefaultService+":") {
			t.Errorf("expected default service in:\n%s", buf.String())
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(ctx, &buf, "xml", lines, Options{})
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Render(xml) error = %v; want ErrUnknownFormat", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestIsFormat(t *testing.T) {
	for _, f := range constants.Formats {
		if !IsFormat(f) {
			t.Errorf("IsFormat(%q) = false", f)
		}
	}
	if IsFormat("JSON") || IsFormat("") {
		t.Error("IsFormat accepted an unknown name")
	}
}
