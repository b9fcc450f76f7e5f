package main

import (
	"os"
	"path/filepath"
	"testing"

	"avdesign-hq/meridian/pkg/config"
)

func resetValidateFlags() {
	validateFlags.design = ""
	validateFlags.standards = ""
	validateFlags.field = ""
	validateFlags.projectID = ""
	validateFlags.roomID = ""
	validateFlags.format = "text"
	validateFlags.trace = false
	validateFlags.noHistory = true
}

func TestLoadDesign(t *testing.T) {
	design, err := loadDesign("testdata/design.yaml")
	if err != nil {
		t.Fatalf("loadDesign: %v", err)
	}
	if design.Dimensions.RoomType != "conference_room" || design.Dimensions.Platform != "teams" {
		t.Errorf("dimensions lost: %+v", design.Dimensions)
	}
	if design.Room.Capacity != 12 || design.Room.Area != 42 {
		t.Errorf("room lost: %+v", design.Room)
	}
	if len(design.Equipment) != 2 {
		t.Fatalf("equipment = %d, want 2", len(design.Equipment))
	}
	disp := design.EquipmentByID("disp-1")
	if disp == nil || disp.Type != "display" {
		t.Fatalf("disp-1 not loaded: %+v", disp)
	}
	if size, ok := disp.Attributes["size"]; !ok || size.Num != 65 {
		t.Errorf("display size attribute lost: %+v", disp.Attributes)
	}
}

func TestLoadDesignMissingFile(t *testing.T) {
	if _, err := loadDesign("testdata/nope.yaml"); err == nil {
		t.Error("missing design file should return error")
	}
}

func TestValidateDesignPasses(t *testing.T) {
	resetValidateFlags()
	validateFlags.design = "testdata/design.yaml"
	validateFlags.standards = standardsDir(t)

	if err := validateDesign(nil, nil); err != nil {
		t.Errorf("validateDesign() with conforming design returned error: %v", err)
	}
}

func TestValidateDesignFails(t *testing.T) {
	resetValidateFlags()
	validateFlags.design = failingDesign(t)
	validateFlags.standards = standardsDir(t)

	if err := validateDesign(nil, nil); err == nil {
		t.Error("validateDesign() with undersized display should return error")
	}
}

func TestValidateDesignFieldFilter(t *testing.T) {
	resetValidateFlags()
	validateFlags.design = failingDesign(t)
	validateFlags.standards = standardsDir(t)
	validateFlags.field = "room.capacity"

	// The only error concerns display.size; filtering to another field
	// leaves the result valid.
	if err := validateDesign(nil, nil); err != nil {
		t.Errorf("validateDesign() filtered to clean field returned error: %v", err)
	}
}

// standardsDir copies the valid standards fixture into its own
// directory so directory loading sees only it.
func standardsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/valid-standards.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "standards.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// failingDesign writes a design whose display is under the minimum
// size.
func failingDesign(t *testing.T) string {
	t.Helper()
	design := `
dimensions:
  room_type: conference_room
room:
  capacity: 12
attributes:
  display:
    size: 40
`
	path := filepath.Join(t.TempDir(), "design.yaml")
	if err := os.WriteFile(path, []byte(design), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewEngineSeverityOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.Severity = map[string]string{"configuration": "suggestion"}
	eng, err := newEngine(cfg)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if eng == nil {
		t.Fatal("engine is nil")
	}
}
