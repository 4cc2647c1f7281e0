package metrics

import "errors"

// 预定义错误.
var (
	ErrNilConfig      = errors.New("metrics: 配置为空")
	ErrRegisterMetric = errors.New("metrics: 注册指标失败")
)
