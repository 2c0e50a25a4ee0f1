package compose

import (
	"context"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEnvironment(t *testing.T) {
	env := Environment([]string{"TZ=UTC", "", "EMPTY=", "FROM_SHELL", "URL=a=b", "TZ=Europe/Paris"})

	if len(env) != 4 {
		t.Fatalf("expected 4 keys, got %d: %v", len(env), env)
	}

	tests := []struct {
		key      string
		expected *string
	}{
		{"TZ", ptr("Europe/Paris")},
		{"EMPTY", ptr("")},
		{"FROM_SHELL", nil},
		{"URL", ptr("a=b")},
	}
	for _, tt := range tests {
		got, ok := env[tt.key]
		if !ok {
			t.Errorf("key %q missing", tt.key)
			continue
		}
		switch {
		case tt.expected == nil && got != nil:
			t.Errorf("%s = %q; want nil", tt.key, *got)
		case tt.expected != nil && (got == nil || *got != *tt.expected):
			t.Errorf("%s = %v; want %q", tt.key, got, *tt.expected)
		}
	}
}

func TestFragment(t *testing.T) {
	out, err := Fragment("web", []string{"TZ=UTC", "FROM_SHELL"})
	if err != nil {
		t.Fatalf("Fragment error: %v", err)
	}

	var doc struct {
		Services map[string]struct {
			Environment map[string]*string `yaml:"environment"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("fragment is not valid YAML: %v\n%s", err, out)
	}
	web, ok := doc.Services["web"]
	if !ok {
		t.Fatalf("service web missing in:\n%s", out)
	}
	if v := web.Environment["TZ"]; v == nil || *v != "UTC" {
		t.Errorf("TZ = %v; want UTC", v)
	}
	if v, ok := web.Environment["FROM_SHELL"]; !ok || v != nil {
		t.Errorf("FROM_SHELL = %v (present %v); want null", v, ok)
	}
}

func TestFragmentEmptyService(t *testing.T) {
	if _, err := Fragment("", []string{"A=1"}); err == nil {
		t.Error("expected an error for an empty service name")
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("Fragment", func(t *testing.T) {
		out, err := Fragment("app", []string{"TZ=UTC", "PUID=1000", "FROM_SHELL"})
		if err != nil {
			t.Fatal(err)
		}
		if err := Validate(ctx, dir, out); err != nil {
			t.Errorf("Validate(fragment) error: %v\n%s", err, out)
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		if err := Validate(ctx, dir, []byte("services: [ unclosed bracket\n")); err == nil {
			t.Error("expected an error for invalid YAML")
		}
	})

	t.Run("InvalidEnvironment", func(t *testing.T) {
		content := []byte("services:\n  app:\n    environment: 42\n")
		if err := Validate(ctx, dir, content); err == nil {
			t.Error("expected a schema error for a scalar environment")
		}
	})
}

func ptr(s string) *string {
	return &s
}
