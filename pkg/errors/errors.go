package errors

import "errors"

// ErrNotFound 记录不存在（跨模块共享的存储层哨兵）
var ErrNotFound = errors.New("记录不存在")
