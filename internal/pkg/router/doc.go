// Package router adapts httprouter to handlers that return a response value
// or an error, and carries the HTTP middleware stack.
//
// Success values are encoded as JSON. A value with a Message method is
// rendered as {"message": ...}; optional StatusCode and Cookies methods set
// the status and cookies. Errors are rendered from goerror: validation
// failures as a field map, business errors as {"error": ...}, everything
// else as a generic 500.
package router
