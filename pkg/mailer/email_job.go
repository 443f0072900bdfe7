package mailer

// EmailJob is a rendered message ready for a Sender. Tag labels the message
// in Mailgun analytics; it is the event type that caused it.
type EmailJob struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Tag     string
}
