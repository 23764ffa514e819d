package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Service 错误：INVALID_ARGUMENT, UNAVAILABLE
//   - 数据质量：INCONSISTENT_DATA（候选无法解析为产品特征）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_ARGUMENT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "signal", "service"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"          // 资源不存在
	ErrorCodeNotSupported     = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeUnavailable      = "UNAVAILABLE"        // 服务不可用
	ErrorCodeInvalidArgument  = "INVALID_ARGUMENT"   // 输入无效
	ErrorCodeInconsistentData = "INCONSISTENT_DATA"  // 数据不一致（脏边/脏候选）
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleSignal  = "signal"  // 信号模块
	ModuleService = "service" // 服务模块
)

// ErrRecommendationUnavailable 表示所有参与信号均不可用：
// 与"没有合格候选"的空结果区分，调用方据此判断系统降级还是确无匹配。
var ErrRecommendationUnavailable = NewDomainError(
	ModuleService, ErrorCodeUnavailable, "recommendation: all signal providers unavailable")

// IsInvalidArgument 检查错误是否为 INVALID_ARGUMENT。
func IsInvalidArgument(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidArgument
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsInconsistentData 检查错误是否为 INCONSISTENT_DATA。
func IsInconsistentData(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInconsistentData
	}
	return false
}
