// Package validator validates request and use case input structs.
//
// Business code depends on the Validator interface. The go-playground v10
// implementation reports failures as a field-to-message map keyed by the
// snake_case field name, with messages phrased for API clients.
package validator
