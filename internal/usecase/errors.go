package usecase

// Taxonomia de falhas do pipeline:
// DomainError    = terminal, culpa do dado/estado (não adianta retentar)
// TechnicalError = infra (remoto esgotou retries, banco falhou)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeRemoteNotFound = "REMOTE_NOT_FOUND"
	CodeUnprocessable  = "UNPROCESSABLE_CONTACT"
	CodeDealNoContact  = "DEAL_NO_CONTACT"
	CodeRemoteDown     = "REMOTE_UNAVAILABLE"
	CodeLocalPersist   = "LOCAL_PERSISTENCE"
)

type DomainError struct {
	Code    string
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, cause: cause}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
	cause   error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.cause
}

func NewTechnicalError(code, message string, cause error) *TechnicalError {
	return &TechnicalError{Code: code, Message: message, cause: cause}
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
