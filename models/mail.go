package models

// MailMessage is the payload posted to the mail relay.
type MailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`

	// Kind tags the message for the relay ("account_activation", "password_reset").
	Kind string `json:"kind"`
}

// Mail kinds.
const (
	MailKindActivation    = "account_activation"
	MailKindPasswordReset = "password_reset"
)
