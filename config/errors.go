package config

import "errors"

// 预定义错误.
var (
	ErrFileNotFound = errors.New("配置文件不存在")
	ErrInvalidType  = errors.New("不支持的配置文件类型")
	ErrReadConfig   = errors.New("读取配置失败")
	ErrUnmarshal    = errors.New("解析配置失败")
	ErrValidation   = errors.New("配置验证失败")
)
