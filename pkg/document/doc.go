// Package document represents decoded YAML documents as tagged-variant values.
//
// Schema and configuration files are loosely typed: a key may hold a mapping
// in one file and a list in another. Rather than decoding into structs and
// losing that information, documents are decoded into [Value] trees whose
// [Kind] (null, scalar, mapping, sequence) callers check explicitly.
// Mappings keep their document key order, which drives table, column and
// relation order in the rendered diagram.
//
//	v, err := document.Parse(data)
//	models, ok := v.Get("models")
//	if !ok || !models.IsMapping() {
//	    // reject
//	}
//
// Values can be converted back to YAML with [Encode] or used directly with
// yaml.Marshal through [Value.MarshalYAML].
package document
