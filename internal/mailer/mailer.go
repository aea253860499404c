package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

// Mailer SMTP 邮件发送，HTML 模板渲染后投递
type Mailer struct {
	client *mail.Client
	from   string
}

func New(host string, port int, username, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}
	return &Mailer{client: client, from: from}, nil
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome to SchoolBooks, {{.Name}}!</h2>
<p>Your account is ready. List your first textbook or browse what other students are selling.</p>
`))

var orderTmpl = template.Must(template.New("order").Parse(`
<h2>Order update</h2>
<p>{{.Message}}</p>
<p>Order: {{.OrderID}}</p>
`))

// SendWelcome 注册成功欢迎邮件
func (m *Mailer) SendWelcome(to, name string) error {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return fmt.Errorf("mailer: render welcome: %w", err)
	}
	return m.send(to, "Welcome to SchoolBooks", buf.String())
}

// SendOrderMail 订单状态变更邮件
func (m *Mailer) SendOrderMail(to, orderID, message string) error {
	var buf bytes.Buffer
	data := struct{ OrderID, Message string }{OrderID: orderID, Message: message}
	if err := orderTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("mailer: render order mail: %w", err)
	}
	return m.send(to, "Your SchoolBooks order", buf.String())
}

func (m *Mailer) send(to, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mailer: to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)
	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
