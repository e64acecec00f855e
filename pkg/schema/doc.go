// Package schema loads and compiles the JSON Schema that describes a Read
// Until configuration document, and extracts from it the regular
// expressions that target list files must satisfy.
//
// Schemas are compiled with santhosh-tekuri/jsonschema. Regex keywords
// ("pattern", "patternProperties") are evaluated with dlclark/regexp2 so
// that schemas written for a Perl-style regex dialect, look-arounds
// included, compile unchanged. Schemas without a "$schema" keyword are
// treated as draft 2020-12 unless another default draft is configured.
// The "format" keyword is an annotation only and never fails validation.
//
// # Target patterns
//
// The permitted forms of a condition's targets are declared at
//
//	definitions.conditions.patternProperties["^[0-9]+$"].properties.targets.items.oneOf
//
// ("$defs" is accepted in place of "definitions"). Each oneOf entry
// contributes its "pattern" as a regex, or its "const" string as a literal.
//
// # Usage
//
//	sch, err := schema.Load("rules.schema.json")
//	if err != nil {
//	    return err
//	}
//	if err := sch.Validate(doc.Data); err != nil {
//	    var failure *schema.ValidationFailure
//	    if errors.As(err, &failure) {
//	        for _, issue := range failure.Issues {
//	            fmt.Println(issue)
//	        }
//	    }
//	}
//	patterns, err := sch.TargetPatterns()
package schema
