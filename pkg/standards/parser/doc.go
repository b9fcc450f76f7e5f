// Package parser reads standards files from YAML into the domain
// model.
//
// A standards file carries two top-level lists: "nodes", the hierarchy
// nodes with optional dimension bindings, and "standards", the rule
// collections attached to hierarchy leaves. The parser decodes the
// YAML, builds the typed model, and runs the structural checks from
// the validator package, reporting every problem it finds rather than
// stopping at the first.
//
// Example file:
//
//	nodes:
//	  - id: root
//	    kind: folder
//	    name: Global
//	  - id: conference
//	    parent: root
//	    kind: folder
//	    name: Conference Rooms
//	    dimension: room_type
//	    value: conference_room
//	  - id: conference-av
//	    parent: conference
//	    kind: standard
//	    name: Conference AV
//
//	standards:
//	  - id: std-conference-av
//	    node: conference-av
//	    name: Conference AV Baseline
//	    rules:
//	      - id: display-min-size
//	        name: Minimum display size
//	        aspect: configuration
//	        expression_type: constraint
//	        expression: display.size >= 55
//	        priority: 50
//	        conditions:
//	          - dimension: room_type
//	            operator: equals
//	            value: conference_room
package parser
