// Meridian is a standards rule engine for AV room design validation.
//
// It validates room designs against an organization's standards
// library, providing:
//   - Dimension-scoped rules (room type, platform, ecosystem, tier,
//     use case, client) with specificity-based conflict resolution
//   - Constraint, formula, conditional, range, and pattern expressions
//   - A hierarchical standards library loaded from YAML or SQLite
//   - Validation pass history with retention pruning
//
// Usage:
//
//	# Validate a design against a standards directory
//	meridian validate --design design.yaml --standards standards/
//
//	# Validate standards files
//	meridian lint --file standards/conference.yaml
//
//	# Show recent validation passes
//	meridian history --limit 20
//
//	# Show version information
//	meridian version
package main

func main() {
	Execute()
}
