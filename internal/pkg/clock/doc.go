// Package clock abstracts the wall clock.
//
// Usecases read time through Clocker so that last-login stamps and token
// expiry can be pinned in tests with Fixed.
package clock
