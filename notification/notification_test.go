package notification

import (
	"bytes"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCarriesAttachments(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "clinic@example.com", "secret")

	msg := m.message("patient@example.com", "Appointment confirmed", "See you soon",
		[]services.Attachment{{Name: "receipt.pdf", Content: []byte("%PDF-1.3")}})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Appointment confirmed")
	assert.Contains(t, raw, "To: patient@example.com")
	assert.Contains(t, raw, `filename="receipt.pdf"`)
}

func TestSendWithoutSenderFails(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "", "")
	assert.Error(t, m.Send("patient@example.com", "hi", "body"))
}

func TestNewMessagePlatformConfig(t *testing.T) {
	msg := newMessage("New booking", "Asha rao at 9am")

	assert.Equal(t, "New booking", msg.Notification.Title)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "Asha rao at 9am", msg.APNS.Payload.Aps.Alert.Body)
}
