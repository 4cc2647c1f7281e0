package trace

import "errors"

// 预定义错误.
var (
	ErrNilConfig        = errors.New("trace: 配置为空")
	ErrEmptyServiceName = errors.New("trace: 服务名称为空")
	ErrEmptyEndpoint    = errors.New("trace: OTLP端点为空")
	ErrCreateExporter   = errors.New("trace: 创建OTLP导出器失败")
	ErrCreateResource   = errors.New("trace: 创建资源失败")
)
