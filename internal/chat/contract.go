//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package chat

// Transport delivers one event to one connection. Implementations must not
// block on the recipient.
type Transport interface {
	Emit(id ConnectionID, event string, payload any) error
}

// ContentFilter vets message bodies before they are relayed.
type ContentFilter interface {
	Check(text string) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(id ConnectionID, event string, payload any) error

func (f TransportFunc) Emit(id ConnectionID, event string, payload any) error {
	return f(id, event, payload)
}
