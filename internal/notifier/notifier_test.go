package notifier

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	sent     []Message
	err      error
	deadline bool
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Send(ctx context.Context, msg Message) error {
	_, r.deadline = ctx.Deadline()
	r.sent = append(r.sent, msg)
	return r.err
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestNotifier(t *testing.T, transport Transport, zone string, at time.Time) *Notifier {
	t.Helper()
	loc, err := ParseLocation(zone)
	require.NoError(t, err)
	n, err := New(transport, Config{To: "owner@example.com", From: "noreply@example.com", FromName: "Portfolio", Location: loc}, zerolog.Nop(), WithClock(fixedClock(at)))
	require.NoError(t, err)
	return n
}

func TestNotifierSendComposesBothBodies(t *testing.T) {
	transport := &recordingTransport{}
	n := newTestNotifier(t, transport, "UTC", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	err := n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Message: "Line one\nLine two"})
	require.NoError(t, err)
	require.Len(t, transport.sent, 1)
	require.True(t, transport.deadline, "delivery must run under a deadline")

	msg := transport.sent[0]
	require.Equal(t, "owner@example.com", msg.To)
	require.Equal(t, "noreply@example.com", msg.From)
	require.Equal(t, "ada@example.com", msg.ReplyTo)
	require.Equal(t, "Ada", msg.ReplyToName)
	require.Equal(t, "Portfolio Contact - Ada", msg.Subject)

	require.Contains(t, msg.Text, "From: Ada (ada@example.com)")
	require.Contains(t, msg.Text, "Subject: Portfolio Contact - Ada")
	require.Contains(t, msg.Text, "Line one\nLine two")
	require.Contains(t, msg.Text, "Sent from Portfolio Contact Form")

	require.Contains(t, msg.HTML, "New Message from Ada")
	require.Contains(t, msg.HTML, "Line one<br/>Line two")
	require.Contains(t, msg.HTML, "March 01, 2024 at 12:00 PM UTC")
}

func TestNotifierKeepsExplicitSubject(t *testing.T) {
	transport := &recordingTransport{}
	n := newTestNotifier(t, transport, "UTC", time.Now())

	require.NoError(t, n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Subject: "Job offer", Message: "Hi"}))
	require.Equal(t, "Job offer", transport.sent[0].Subject)
}

func TestNotifierTimestampFollowsDaylightSaving(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "winter", at: time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC), want: "January 15, 2024 at 12:30 PM EST"},
		{name: "summer", at: time.Date(2024, 7, 15, 17, 30, 0, 0, time.UTC), want: "July 15, 2024 at 1:30 PM EDT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &recordingTransport{}
			n := newTestNotifier(t, transport, "America/New_York", tc.at)

			require.NoError(t, n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"}))
			require.Contains(t, transport.sent[0].HTML, tc.want)
		})
	}
}

func TestNotifierFixedOffsetIsLabelledLiterally(t *testing.T) {
	transport := &recordingTransport{}
	n := newTestNotifier(t, transport, "UTC-05:00", time.Date(2024, 7, 15, 17, 30, 0, 0, time.UTC))

	require.NoError(t, n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"}))
	require.Contains(t, transport.sent[0].HTML, "July 15, 2024 at 12:30 PM UTC-05:00")
}

func TestNotifierEscapesMarkupInHTMLBody(t *testing.T) {
	transport := &recordingTransport{}
	n := newTestNotifier(t, transport, "UTC", time.Now())

	err := n.Send(context.Background(), Submission{Name: "<b>Eve</b>", Email: "eve@example.com", Message: "<script>alert(1)</script>fish & chips"})
	require.NoError(t, err)

	html := transport.sent[0].HTML
	require.NotContains(t, html, "<script>")
	require.NotContains(t, html, "<b>Eve</b>")
	require.Contains(t, html, "New Message from &lt;b&gt;Eve&lt;/b&gt;")
	require.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;fish &amp; chips")
}

func TestNotifierKeepsAngleBracketTextInHTMLBody(t *testing.T) {
	transport := &recordingTransport{}
	n := newTestNotifier(t, transport, "UTC", time.Now())

	err := n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Message: "use <T> here\r\nthanks"})
	require.NoError(t, err)

	msg := transport.sent[0]
	require.Contains(t, msg.HTML, "use &lt;T&gt; here<br/>thanks")
	require.Contains(t, msg.Text, "use <T> here")
}

func TestNotifierWrapsTransportFailure(t *testing.T) {
	cause := errors.New("535 authentication failed")
	transport := &recordingTransport{err: cause}
	n := newTestNotifier(t, transport, "UTC", time.Now())

	err := n.Send(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
	require.Error(t, err)

	var notifyErr *Error
	require.ErrorAs(t, err, &notifyErr)
	require.Equal(t, "recording", notifyErr.Transport)
	require.ErrorIs(t, err, cause)
	require.Len(t, transport.sent, 1, "no retries")
}

func TestNewRequiresDestination(t *testing.T) {
	_, err := New(&recordingTransport{}, Config{}, zerolog.Nop())
	require.Error(t, err)

	_, err = New(nil, Config{To: "owner@example.com"}, zerolog.Nop())
	require.Error(t, err)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("UTC+02")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	require.Equal(t, 2*3600, offset)

	loc, err = ParseLocation("utc-03:30")
	require.NoError(t, err)
	_, offset = time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	require.Equal(t, -(3*3600 + 30*60), offset)

	loc, err = ParseLocation("")
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)

	_, err = ParseLocation("Mars/Olympus")
	require.Error(t, err)

	_, err = ParseLocation("UTC+99")
	require.Error(t, err)
}
