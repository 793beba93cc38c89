package core

// DomainError 是领域层的统一错误类型。
//
// 错误分为四类：
//   - NOT_FOUND / INVALID_ARGUMENT：客户端错误
//   - UPSTREAM_UNAVAILABLE：目录或行为仓库故障，调用方先重试一次再上抛
//   - COMPUTATION_SKIPPED：单个候选或邻居打分失败，记日志并跳过，不中断批次
//
// 对外响应只暴露 Code 与 Message，不携带内部堆栈。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "profile"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// 错误代码常量
const (
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeInvalidArgument    = "INVALID_ARGUMENT"
	ErrorCodeUpstreamUnavail    = "UPSTREAM_UNAVAILABLE"
	ErrorCodeComputationSkipped = "COMPUTATION_SKIPPED"
	ErrorCodeNotSupported       = "NOT_SUPPORTED"
)

// 模块名称常量
const (
	ModuleStore    = "store"
	ModuleActivity = "activity"
	ModuleCatalog  = "catalog"
	ModuleHistory  = "history"
	ModuleProfile  = "profile"
	ModuleRecall   = "recall"
	ModuleEngine   = "engine"
)

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
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

func hasCode(err error, code string) bool {
	if e := GetDomainError(err); e != nil {
		return e.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsInvalidArgument 检查错误是否为 INVALID_ARGUMENT。
func IsInvalidArgument(err error) bool { return hasCode(err, ErrorCodeInvalidArgument) }

// IsUpstreamUnavailable 检查错误是否为上游不可用。
func IsUpstreamUnavailable(err error) bool { return hasCode(err, ErrorCodeUpstreamUnavail) }

// Store 错误定义
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在。
func IsStoreNotFound(err error) bool {
	e := GetDomainError(err)
	return e != nil && e.Module == ModuleStore && e.Code == ErrorCodeNotFound
}
