package collection

import "errors"

var (
	// ErrSetNotFound 操作引用了未注册的集合名
	ErrSetNotFound = errors.New("set not found")
	// ErrUnsupportedOperation 操作关键字不在支持的算子中
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
