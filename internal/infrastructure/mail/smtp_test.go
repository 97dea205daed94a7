package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer_SinHostDeshabilitado(t *testing.T) {
	assert.Nil(t, NewMailer(Config{}))
}

func TestMessage(t *testing.T) {
	m := NewMailer(Config{Host: "smtp.example.com", Port: 587, User: "bot@example.com"})
	require.NotNil(t, m)

	msg := m.message("ana@example.com", "Exportación lista", "<p>Hola</p>")
	assert.Equal(t, []string{"bot@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>Hola</p>")
}
