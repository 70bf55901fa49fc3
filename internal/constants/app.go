package constants

const (
	AppCartService    = "cart-service"
	AppProductService = "product-service"
	AppMainLokapasar  = "main lokapasar"
	AudienceShopper   = "audience-shopper"
)
