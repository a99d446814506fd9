package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString(t *testing.T) {
	tests := []struct {
		name     string
		input    SecretString
		wantJSON string
		wantYAML any
		wantText string
	}{
		{"empty", "", "null", nil, ""},
		{"short", "x", `"` + SecretStringValue + `"`, SecretStringValue, SecretStringValue},
		{"password", "hunter2", `"` + SecretStringValue + `"`, SecretStringValue, SecretStringValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotJSON, err := tt.input.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(gotJSON) != tt.wantJSON {
				t.Errorf("MarshalJSON() = %s, want %s", gotJSON, tt.wantJSON)
			}

			gotYAML, err := tt.input.MarshalYAML()
			if err != nil {
				t.Fatalf("MarshalYAML() error = %v", err)
			}
			if gotYAML != tt.wantYAML {
				t.Errorf("MarshalYAML() = %v, want %v", gotYAML, tt.wantYAML)
			}

			if got := fmt.Sprintf("%v", tt.input); got != tt.wantText {
				t.Errorf("Sprintf(%%v) = %q, want %q", got, tt.wantText)
			}
			if got := tt.input.String(); got != tt.wantText {
				t.Errorf("String() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestSecretString_Protection(t *testing.T) {
	prot := ProtectionConfig{
		Enable:        true,
		UserPassword:  "reader",
		OwnerPassword: "hunter2",
		AllowPrint:    true,
	}

	data, err := yaml.Marshal(prot)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	js, err := json.Marshal(prot)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	for _, out := range []string{string(data), string(js), fmt.Sprintf("%+v", prot)} {
		if strings.Contains(out, "hunter2") || strings.Contains(out, "reader") {
			t.Errorf("password leaked: %s", out)
		}
	}

	// explicit conversion is the only way to the value
	if string(prot.OwnerPassword) != "hunter2" {
		t.Errorf("OwnerPassword = %q, want hunter2", string(prot.OwnerPassword))
	}
}

func TestSecretString_Unmarshal(t *testing.T) {
	var prot ProtectionConfig
	if err := yaml.Unmarshal([]byte("enable: true\nowner_password: hunter2\n"), &prot); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if string(prot.OwnerPassword) != "hunter2" {
		t.Errorf("OwnerPassword = %q, want hunter2", string(prot.OwnerPassword))
	}
	if prot.UserPassword != "" {
		t.Errorf("UserPassword = %q, want empty", string(prot.UserPassword))
	}
}
