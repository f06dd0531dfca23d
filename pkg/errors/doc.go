// Package errors provides structured error types for better observability
// and programmatic error handling across codematch.
//
// Malformed standards tables surface as ErrCodeMalformedTable; lookups of
// unknown tables or building types surface as ErrCodeNotFound. A search that
// matches nothing is not an error.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformedTable,
//	    "value is not a table",
//	    table.ErrMalformedTable,
//	    map[string]any{
//	        "value": fmt.Sprintf("%v", v),
//	    },
//	)
package errors
