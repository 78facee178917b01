package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

// SendGridTransport posts messages to the SendGrid v3 mail API.
type SendGridTransport struct {
	apiKey  string
	baseURL string
}

// NewSendGridTransport returns a transport; an empty baseURL targets api.sendgrid.com.
func NewSendGridTransport(apiKey, baseURL string) (*SendGridTransport, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("sendgrid api key must not be empty")
	}
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com"
	}
	return &SendGridTransport{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Name implements Transport.
func (t *SendGridTransport) Name() string {
	return "sendgrid"
}

// Send implements Transport. Only 200 and 202 count as accepted.
func (t *SendGridTransport) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(msg.FromName, msg.From)
	to := sgmail.NewEmail("", msg.To)
	payload := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	if msg.ReplyTo != "" {
		payload.SetReplyTo(sgmail.NewEmail(msg.ReplyToName, msg.ReplyTo))
	}

	request := sendgrid.GetRequest(t.apiKey, sendGridEndpoint, t.baseURL)
	request.Method = rest.Post
	request.Body = sgmail.GetRequestBody(payload)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body := strings.TrimSpace(response.Body)
		if len(body) > 512 {
			body = body[:512]
		}
		return fmt.Errorf("sendgrid rejected message: status=%d body=%s", response.StatusCode, body)
	}
}
