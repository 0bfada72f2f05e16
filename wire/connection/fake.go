package connection

import "bytes"

// FakeConn 不依赖真实网络连接，回放命令日志以及测试时使用
type FakeConn struct {
	Connection
	buf bytes.Buffer
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// Write writes data to buffer
func (c *FakeConn) Write(b []byte) (int, error) {
	return c.buf.Write(b)
}

// Bytes returns written data
func (c *FakeConn) Bytes() []byte {
	return c.buf.Bytes()
}

func (c *FakeConn) Close() error {
	return nil
}

func (c *FakeConn) Name() string {
	return "fake-conn"
}
