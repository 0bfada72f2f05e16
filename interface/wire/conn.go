package wire

// Connection represents a connection with a client
type Connection interface {
	Write([]byte) (int, error)

	Close() error

	SetPassword(string)
	GetPassword() string

	Name() string
}
