package wire

// Reply 表示序列化协议中的一条消息
type Reply interface {
	ToBytes() []byte
	DataString() string
}
