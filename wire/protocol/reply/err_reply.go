package reply

import "github.com/dawnzzz/simple-sets/interface/wire"

// ErrorReply 既是 error 也是一条协议消息
type ErrorReply interface {
	Error() string
	ToBytes() []byte
	DataString() string
}

// IsErrorReply returns true if the given reply is an error
func IsErrorReply(r wire.Reply) bool {
	return len(r.ToBytes()) > 0 && r.ToBytes()[0] == '-'
}

// StandardErrReply represents server error
type StandardErrReply struct {
	Status string
}

// MakeErrReply creates StandardErrReply
func MakeErrReply(status string) *StandardErrReply {
	return &StandardErrReply{
		Status: status,
	}
}

func (r *StandardErrReply) ToBytes() []byte {
	return []byte("-" + r.Status + CRLF)
}

func (r *StandardErrReply) Error() string {
	return r.Status
}

func (r *StandardErrReply) DataString() string {
	return "(error) " + r.Status
}

// ArgNumErrReply represents wrong number of arguments
type ArgNumErrReply struct {
	Cmd string
}

// MakeArgNumErrReply represents wrong number of arguments
func MakeArgNumErrReply(cmd string) *ArgNumErrReply {
	return &ArgNumErrReply{
		Cmd: cmd,
	}
}

func (r *ArgNumErrReply) ToBytes() []byte {
	return []byte("-ERR wrong number of arguments for '" + r.Cmd + "' command" + CRLF)
}

func (r *ArgNumErrReply) Error() string {
	return "ERR wrong number of arguments for '" + r.Cmd + "' command"
}

func (r *ArgNumErrReply) DataString() string {
	return "(error) " + r.Error()
}
