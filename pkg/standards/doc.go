// Package standards defines the domain model for AV design standards:
// rules, rule conditions, the standards hierarchy, and the tagged value
// type used by conditions and design-context attributes.
//
// A Standard is a named bag of rules attached to a leaf node of the
// standards hierarchy. Each Rule scopes its applicability through one or
// more conditions over the six standard dimensions (room type, platform,
// ecosystem, tier, use case, client), carries an expression in one of
// five forms, and governs a single design aspect (equipment selection,
// quantities, placement, configuration, cabling, commercial).
//
// Types in this package are plain data. Structural validation lives in
// the validator subpackage; evaluation semantics live in
// pkg/rules/engine.
package standards
