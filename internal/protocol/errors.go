package protocol

// 错误码
const (
	ErrCodeUnknown       = 1000
	ErrCodePrecondition  = 1001 // 前置条件不满足
	ErrCodeLookup        = 1002 // 找不到指定的牌
	ErrCodeConfiguration = 1003 // 配置错误
	ErrCodeInvalidMsg    = 2001
	ErrCodeUnknownPlayer = 2002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:       "unknown error",
	ErrCodePrecondition:  "precondition violated",
	ErrCodeLookup:        "card not found",
	ErrCodeConfiguration: "invalid configuration",
	ErrCodeInvalidMsg:    "invalid message",
	ErrCodeUnknownPlayer: "unknown player",
}
