package lottery

import "errors"

// 引擎错误分类：调用方通过 errors.Is 区分处理
var (
	// ErrInvalidParameter 参数超出范围，调用方修正输入后可恢复
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData 历史数据不足以支撑请求的窗口
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDomainViolation 生成的组合违反数据模型约束，属于内部缺陷
	ErrDomainViolation = errors.New("domain violation")
)
