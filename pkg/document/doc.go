// Package document loads Read Until configuration documents.
//
// A configuration document is a TOML table (YAML and JSON are accepted by
// file extension) with a "conditions" table keyed by numeric-string ids.
// Loading normalizes every value to the JSON data model expected by the
// schema validator:
//
//   - integers and finite floats become json.Number
//   - datetimes become RFC 3339 strings
//   - arrays of tables become arrays of objects
//   - YAML mappings with non-string keys get stringified keys
//
// Non-finite floats (TOML inf/nan) are kept as float64 because they have no
// JSON number representation.
//
// The source order of condition ids is preserved for TOML (from the
// decoder's key metadata) and YAML (from the node tree). JSON documents fall
// back to natural numeric ordering.
//
// # Usage
//
//	doc, err := document.Load("experiment.toml")
//	if err != nil {
//	    return err
//	}
//	for _, c := range doc.Conditions() {
//	    if p, ok := c.TargetsPath(); ok {
//	        fmt.Println(c.ID, p)
//	    }
//	}
package document
