// Package validator checks a configuration document against a JSON Schema
// and, optionally, checks the target list files it references.
//
// # Overview
//
// Validation runs in two passes:
//
//  1. Schema validation. The whole document is validated against the
//     compiled schema. Every leaf error is recorded as a schema.Issue and the
//     result status is "fail". The target pass is not run.
//  2. Target-file check (WithTargetCheck). The permitted target forms are
//     extracted from the schema's condition definition, compiled for
//     full-match semantics, and every line of every referenced target file
//     is matched against them. Each mismatching line is a Violation; the
//     check reports every violation and keeps going.
//
// Independently of both passes, keys a condition declares that the schema
// does not know are compared with the known property names. Close matches
// become Hints.
//
// # Usage
//
//	v := validator.New(
//	    validator.WithVersion(version),
//	    validator.WithTargetCheck(true),
//	)
//	result, err := v.Validate(ctx, doc, sch)
//	if err != nil {
//	    return err
//	}
//	for _, viol := range result.Violations {
//	    fmt.Println(viol)
//	}
//
// # Result Structure
//
// ValidationResult contains:
//   - Summary: status, schema validity and counts
//   - SchemaErrors: leaf schema validation errors
//   - Violations: target lines matching no permitted pattern
//   - Skipped: conditions the target check did not read a file for
//   - Hints: likely misspelled condition keys
//
// # Error Handling
//
// A document that does not conform to the schema is not an error: it is
// reported in the result. Validate returns an error only when validation
// cannot complete, such as a schema without target patterns while the target
// check is enabled, or a target file that exists but cannot be read.
package validator
