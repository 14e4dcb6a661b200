package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer wraps the SMTP client. With no SMTP credentials configured it runs
// disabled: sends are logged and reported as successful so local setups work
// without a mail account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New() *Mailer {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	if host == "" || user == "" || pass == "" {
		log.Println("SMTP not configured, mail sending disabled")
		return &Mailer{from: "noreply@carvercraft.shop"}
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.dialer == nil {
		log.Printf("mail disabled, would send %q to %s", subject, to)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// SendOTP mails a one-time login code.
func (m *Mailer) SendOTP(to, code string) error {
	body := fmt.Sprintf(`
		<h2>Your login code</h2>
		<p>Use the code below to sign in. It expires in 10 minutes.</p>
		<h1>%s</h1>
		<p>If you did not request this code, you can ignore this mail.</p>
	`, code)
	return m.send(to, "Your CarverCraft login code", body)
}

// SendWelcome mails a greeting after registration.
func (m *Mailer) SendWelcome(to, name string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to CarverCraft!</h2>
		<p>Hi %s,</p>
		<p>Thanks for joining. Browse our cards and gifts, or upload your own
		design and we will print it for you.</p>
	`, name)
	return m.send(to, "Welcome to CarverCraft", body)
}

// SendNewsletter sends one message per subscriber over a single SMTP
// connection and reports how many went out and how many failed.
func (m *Mailer) SendNewsletter(subject, htmlBody string, recipients []string) (sent, failed int) {
	if m.dialer == nil {
		log.Printf("mail disabled, would send newsletter %q to %d subscribers", subject, len(recipients))
		return len(recipients), 0
	}

	conn, err := m.dialer.Dial()
	if err != nil {
		log.Printf("newsletter dial failed: %v", err)
		return 0, len(recipients)
	}
	defer conn.Close()

	msg := gomail.NewMessage()
	for _, to := range recipients {
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", htmlBody)

		if err := gomail.Send(conn, msg); err != nil {
			log.Printf("newsletter send to %s failed: %v", to, err)
			failed++
		} else {
			sent++
		}
		msg.Reset()
	}
	return sent, failed
}
