package mailer

import "go.uber.org/zap"

// Dispatcher submits email sends without letting their outcome reach the
// caller. The production dispatcher runs sends on a goroutine and logs
// failures; tests substitute a synchronous one to observe them.
type Dispatcher interface {
	Dispatch(mail Message)
}

type AsyncDispatcher struct {
	mailer Mailer
	logger *zap.Logger
}

func NewAsyncDispatcher(mailer Mailer, logger *zap.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{mailer: mailer, logger: logger}
}

func (d *AsyncDispatcher) Dispatch(mail Message) {
	go func() {
		if err := d.mailer.Send(mail); err != nil {
			d.logger.Warn("email dispatch failed",
				zap.String("to", mail.To),
				zap.String("subject", mail.Subject),
				zap.Error(err),
			)
		}
	}()
}
