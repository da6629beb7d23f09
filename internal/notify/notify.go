package notify

import (
	"context"
	"log"

	"github.com/marawan13001/zmarketfr-sub000/internal/order"
)

// Channels the merchant summary goes out on.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// LogDispatcher writes both channel messages to the logger. It is the
// default binding when no broker is configured.
type LogDispatcher struct {
	logger        *log.Logger
	merchantPhone string
	merchantEmail string
}

func NewLogDispatcher(logger *log.Logger, merchantPhone, merchantEmail string) *LogDispatcher {
	return &LogDispatcher{logger: logger, merchantPhone: merchantPhone, merchantEmail: merchantEmail}
}

func (d *LogDispatcher) Notify(ctx context.Context, o order.Order) error {
	body := Format(o)
	d.logger.Printf("notify %s -> %s:\n%s", ChannelSMS, d.merchantPhone, body)
	d.logger.Printf("notify %s -> %s:\n%s", ChannelEmail, d.merchantEmail, body)
	return nil
}

var _ order.Dispatcher = (*LogDispatcher)(nil)
