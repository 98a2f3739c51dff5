// Package mail sends plain-text and HTML email over SMTP.
//
// Callers depend on the Mail interface and a provider-neutral Message; the
// SMTP implementation builds MIME messages with gomail.
package mail
