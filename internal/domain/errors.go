package domain

import "errors"

// 业务错误分类，调用方用 errors.Is 判别
var (
	// ErrValidation 必填字段缺失（如房东注册未提供密码）
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication 房东重复注册/登录时密码不匹配
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound 引用的 phone/landlord/user 无法解析
	ErrNotFound = errors.New("not found")
)
