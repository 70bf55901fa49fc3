package log

const (
	KeyAppName            = "app"
	KeyAuthToken          = "authToken"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartItem           = "cartItem"
	KeyCartItemID         = "cartItemId"
	KeyCartItemQuantity   = "cartItemQuantity"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyPathValues         = "pathValues"
	KeyProcess            = "process"
	KeyProduct            = "product"
	KeyProductID          = "productId"
	KeyProductQuantity    = "productQuantity"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestID          = "requestId"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeySellerID           = "sellerId"
	KeySpanID             = "spanId"
	KeyTag                = "tag"
	KeyToken              = "token"
	KeyTraceID            = "traceId"
	KeyUserID             = "userId"
)
