package main

import (
	"testing"
)

func TestLintValidFile(t *testing.T) {
	lintFlags.file = "testdata/valid-standards.yaml"
	lintFlags.dir = ""
	lintFlags.format = "text"

	if err := lintStandards(nil, nil); err != nil {
		t.Errorf("lintStandards() with valid file returned error: %v", err)
	}
}

func TestLintInvalidFile(t *testing.T) {
	lintFlags.file = "testdata/invalid-standards.yaml"
	lintFlags.dir = ""
	lintFlags.format = "text"

	if err := lintStandards(nil, nil); err == nil {
		t.Error("lintStandards() with invalid file should return error")
	}
}

func TestLintNonexistentFile(t *testing.T) {
	lintFlags.file = "testdata/nonexistent.yaml"
	lintFlags.dir = ""
	lintFlags.format = "text"

	if err := lintStandards(nil, nil); err == nil {
		t.Error("lintStandards() with nonexistent file should return error")
	}
}

func TestLintNoFileOrDir(t *testing.T) {
	lintFlags.file = ""
	lintFlags.dir = ""
	lintFlags.format = "text"

	if err := lintStandards(nil, nil); err == nil {
		t.Error("lintStandards() without --file or --dir should return error")
	}
}

func TestLintDirectory(t *testing.T) {
	lintFlags.file = ""
	lintFlags.dir = "testdata"
	lintFlags.format = "text"

	// The directory holds both a valid and an invalid file, so an
	// error is expected and both files must be covered.
	if err := lintStandards(nil, nil); err == nil {
		t.Error("lintStandards() over mixed directory should return error")
	}
}

func TestLintFileResult(t *testing.T) {
	result := lintFile("testdata/valid-standards.yaml")
	if !result.Valid {
		t.Fatalf("valid file reported invalid: %+v", result.Errors)
	}
	if result.Nodes != 3 || result.Standards != 1 || result.Rules != 2 {
		t.Errorf("counts = %d nodes, %d standards, %d rules",
			result.Nodes, result.Standards, result.Rules)
	}

	result = lintFile("testdata/invalid-standards.yaml")
	if result.Valid || len(result.Errors) < 3 {
		t.Errorf("invalid file reported %d errors, valid=%t", len(result.Errors), result.Valid)
	}
}
