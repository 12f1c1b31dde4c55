package constants

const (
	HeaderForwardedByKey = "X-Forwarded-By"
	HeaderUserIDKey      = "X-User-ID"
	HeaderDomainIDKey    = "X-Domain-ID"
	HeaderRequestIDKey   = "X-Request-ID"
	HeaderProxyByKey     = "X-Proxy-By"
)
const GatewayServiceName = "OnlineJudge-Contest"

// DefaultDomainID 未携带 X-Domain-ID 时使用的域
const DefaultDomainID = "system"

const (
	ContextRequestIDKey = "request_id"
	ContextLoggerKey    = "logger"
)
