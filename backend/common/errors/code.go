package errors

// 通用错误
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
)

// 用户错误
const (
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrInvalidToken       = "ERR_INVALID_TOKEN"
)

// 文件错误
const (
	ErrNoFile          = "ERR_NO_FILE"
	ErrFileNotFound    = "ERR_FILE_NOT_FOUND"
	ErrUnsupportedType = "ERR_UNSUPPORTED_TYPE"
	ErrFileTooLarge    = "ERR_FILE_TOO_LARGE"
)

// 分析错误
const (
	ErrAnalyzerDisabled = "ERR_ANALYZER_DISABLED"
)
