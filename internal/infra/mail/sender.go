package mail

import (
	"fmt"

	"github.com/xavierca1/ligue-crm-sync/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	OpsEmail string
}

func NewEmailSender(host string, port int, user, password, opsEmail string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		OpsEmail: opsEmail,
	}
}

// SendSyncFailureAlert avisa ops que um evento falhou de forma terminal.
// O corpo carrega o remote_id para reprocessamento manual
func (s *EmailSender) SendSyncFailureAlert(payload queue.SyncResultPayload) error {
	body := fmt.Sprintf(
		"<p>Falha terminal no sync do CRM.</p>"+
			"<ul>"+
			"<li>Entidade: %s</li>"+
			"<li>Remote ID: %s</li>"+
			"<li>Operação: %s</li>"+
			"<li>Código: %s</li>"+
			"<li>Erro: %s</li>"+
			"<li>Correlation ID: %s</li>"+
			"</ul>"+
			"<p>Reprocessar via POST /sync/contacts/{remoteId} quando resolvido.</p>",
		payload.EntityType,
		payload.RemoteID,
		payload.Operation,
		payload.ErrorCode,
		payload.ErrorMessage,
		payload.CorrelationID,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@liguemedicina.com")
	m.SetHeader("To", s.OpsEmail)
	m.SetHeader("Subject", fmt.Sprintf("⚠️ Sync CRM falhou: %s %s", payload.EntityType, payload.RemoteID))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
