package commands

import "context"

// SMSSender delivers verification codes. Implemented by infra/sms.
type SMSSender interface {
	Send(ctx context.Context, phone, text string) error
}
