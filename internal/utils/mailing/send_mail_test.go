package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageWithAttachment(t *testing.T) {
	config := MailConfig{SMTPEmail: "noreply@foodgram.test", SMTPSender: "Foodgram"}

	msg := BuildMessage(config, "cook@foodgram.test", "Your shopping list", "<p>hi</p>", Attachment{
		FileName:    "shopping_list.txt",
		ContentType: "text/plain",
		Body:        []byte("Shopping list:\n\nFlour (g) - 500\n"),
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: cook@foodgram.test")
	assert.Contains(t, raw, "Subject: Your shopping list")
	assert.Contains(t, raw, `filename="shopping_list.txt"`)
}
