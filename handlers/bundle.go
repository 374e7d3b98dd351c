package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Quote   *QuoteHandler
	Contact *ContactHandler
	Auth    *AuthHandler
	Invoice *InvoiceHandler
	Health  *HealthHandler
}
