package services

import (
	"context"
	"testing"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type captured struct {
	to, code string
}

func (c *captured) SendLoginCode(_ context.Context, to, code string) error {
	c.to, c.code = to, code
	return nil
}

func TestCodeNotifier_Routing(t *testing.T) {
	ctx := context.Background()

	email, sms := &captured{}, &captured{}
	n := &CodeNotifier{Email: email, SMS: sms}

	assert.NoError(t, n.SendCode(ctx, models.Contact{Email: "a@x.io", Phone: "+1555"}, "111111"))
	assert.Equal(t, "a@x.io", email.to)
	assert.Empty(t, sms.to)

	assert.NoError(t, n.SendCode(ctx, models.Contact{Phone: "+1555"}, "222222"))
	assert.Equal(t, captured{to: "+1555", code: "222222"}, *sms)
}

func TestCodeNotifier_NoChannel(t *testing.T) {
	ctx := context.Background()
	n := &CodeNotifier{SMS: &captured{}}
	assert.ErrorIs(t, n.SendCode(ctx, models.Contact{Email: "a@x.io"}, "111111"), errNoChannel)

	dev := &CodeNotifier{DevLog: true, Logger: zap.NewNop()}
	assert.NoError(t, dev.SendCode(ctx, models.Contact{Email: "a@x.io"}, "111111"))
}
