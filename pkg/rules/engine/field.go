package engine

import (
	"regexp"
	"strings"

	"avdesign-hq/meridian/pkg/standards"
)

// fieldPathRe is the strict path grammar: dotted identifier segments.
// Anything else never resolves, which keeps lookup fail-closed and rules
// out reflection-style traversal of arbitrary object graphs.
var fieldPathRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ResolveField resolves a dotted field path against the design context.
// Resolution is bounded to explicit sources, tried in order:
//
//  1. the target equipment's attribute bag, when the rule targets an
//     equipment instance;
//  2. typed room attributes under "room.";
//  3. the six dimension names as bare single-segment paths;
//  4. placed-equipment counts: "equipment.count" and
//     "equipment.<type>.count";
//  5. the design's named attribute groups.
//
// A path that resolves nowhere returns false; per the fail-closed
// policy the caller treats that as not-matched, never as an error.
func ResolveField(design *DesignContext, target *PlacedEquipment, path string) (standards.Value, bool) {
	if design == nil || !fieldPathRe.MatchString(path) {
		return standards.Value{}, false
	}
	segments := strings.Split(path, ".")

	if target != nil {
		if v, ok := lookupAttributes(target.Attributes, segments); ok {
			return v, true
		}
	}

	switch segments[0] {
	case "room":
		return resolveRoomField(design.Room, segments[1:])
	case "equipment":
		return resolveEquipmentField(design, segments[1:])
	}

	if len(segments) == 1 {
		if dim := standards.RuleDimension(segments[0]); dim.IsValid() {
			if v, ok := design.Dimensions.Value(dim); ok {
				return standards.StringValue(v), true
			}
			return standards.Value{}, false
		}
	}

	return lookupAttributes(design.Attributes, segments)
}

// resolveRoomField maps "room.*" paths onto the typed room attributes.
func resolveRoomField(room RoomAttributes, rest []string) (standards.Value, bool) {
	if len(rest) != 1 {
		return standards.Value{}, false
	}
	switch rest[0] {
	case "name":
		return standards.StringValue(room.Name), true
	case "area":
		return standards.NumberValue(room.Area), true
	case "length":
		return standards.NumberValue(room.Length), true
	case "width":
		return standards.NumberValue(room.Width), true
	case "ceiling_height":
		return standards.NumberValue(room.CeilingHeight), true
	case "capacity":
		return standards.NumberValue(float64(room.Capacity)), true
	default:
		return standards.Value{}, false
	}
}

// resolveEquipmentField answers count queries over placed equipment:
// "equipment.count" and "equipment.<type>.count".
func resolveEquipmentField(design *DesignContext, rest []string) (standards.Value, bool) {
	switch len(rest) {
	case 1:
		if rest[0] == "count" {
			return standards.NumberValue(float64(len(design.Equipment))), true
		}
	case 2:
		if rest[1] == "count" {
			return standards.NumberValue(float64(len(design.EquipmentOfType(rest[0])))), true
		}
	}
	return standards.Value{}, false
}

// lookupAttributes walks an attribute bag along path segments through
// nested object values.
func lookupAttributes(attrs map[string]standards.Value, segments []string) (standards.Value, bool) {
	if len(attrs) == 0 || len(segments) == 0 {
		return standards.Value{}, false
	}
	v, ok := attrs[segments[0]]
	if !ok {
		return standards.Value{}, false
	}
	for _, seg := range segments[1:] {
		v, ok = v.Field(seg)
		if !ok {
			return standards.Value{}, false
		}
	}
	return v, true
}

// resolveNumericField resolves a path and reads it as a number.
func resolveNumericField(design *DesignContext, target *PlacedEquipment, path string) (float64, bool) {
	v, ok := ResolveField(design, target, path)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}
