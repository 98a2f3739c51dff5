package event

const OTPEmailDestination string = "accounts_otp_email"
const OTPEmailConsumerNotification string = "accounts_otp_email_notification"

// OTPEmailMessage asks the notification module to deliver a one-time code.
// ID is unique per event and doubles as the consumer idempotency key.
type OTPEmailMessage struct {
	ID      string `json:"id"`
	UserID  int64  `json:"user_id,string"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
