package clients

import "context"

// Answerer is the single operation chat clients need from the assistant.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Interface is a chat front end connector: it subscribes to the assistant
// and relays questions and answers over its own transport.
type Interface interface {
	Subscribe(a Answerer) error
	Close() error
}
