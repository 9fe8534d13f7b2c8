// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"refbook/pkg/cueutil"
)

const testSchema = `
#Config: {
	name?:  string
	port?:  int & >=0 & <=65535
	theme?: "auto" | "dark" | "light"
}
`

type testConfig struct {
	Name  string `json:"name"`
	Port  int    `json:"port"`
	Theme string `json:"theme"`
}

func TestParseAndDecode_Valid(t *testing.T) {
	data := []byte("name: \"refbook\"\nport: 2222\n")

	result, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema), data, "#Config",
		cueutil.WithConcrete(false),
	)
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if result.Value.Name != "refbook" {
		t.Errorf("Name = %q", result.Value.Name)
	}
	if result.Value.Port != 2222 {
		t.Errorf("Port = %d", result.Value.Port)
	}
}

func TestParseAndDecode_SchemaViolation(t *testing.T) {
	data := []byte("port: 99999\n")

	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema), data, "#Config",
		cueutil.WithConcrete(false),
		cueutil.WithFilename("config.cue"),
	)
	if err == nil {
		t.Fatal("expected schema violation error")
	}
	if !strings.Contains(err.Error(), "config.cue") {
		t.Errorf("error should carry the filename, got %v", err)
	}
}

func TestParseAndDecode_BadSyntax(t *testing.T) {
	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema), []byte("name: {{"), "#Config",
	)
	if err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestParseAndDecode_UnknownField(t *testing.T) {
	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema), []byte("bogus: true\n"), "#Config",
		cueutil.WithConcrete(false),
	)
	if err == nil {
		t.Fatal("expected error for field not in closed definition")
	}
}

func TestParseAndDecode_FileTooLarge(t *testing.T) {
	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema), []byte("name: \"refbook\"\n"), "#Config",
		cueutil.WithMaxFileSize(4),
		cueutil.WithFilename("big.cue"),
	)
	if err == nil {
		t.Fatal("expected size limit error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %v", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	if err := cueutil.CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("exact size should pass, got %v", err)
	}
	if err := cueutil.CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("oversize should fail")
	}
}
