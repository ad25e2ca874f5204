package consts

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Versions reported by Client.Version.
const (
	SDKVersion     = "2.3.7"
	WrapperVersion = "1.0.0"
)

// Environment selects the Aditum backend a terminal talks to.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
)

func (e Environment) IsProduction() bool { return e == EnvironmentProduction }

func (e Environment) String() string { return string(e) }

// PaymentType is the card or instant-payment product used for a charge.
type PaymentType string

const (
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypeDebit  PaymentType = "debit"
	PaymentTypePix    PaymentType = "pix"
)

// Defaults applied when a field is absent. The accepted ranges live in the
// validate tags of the payment types.
const (
	DefaultTimeoutSeconds = 30
	DefaultInstallments   = 1
	MaxInstallments       = 12
)

// Base URLs.
const (
	SandboxBaseURL    = "https://payment-dev.aditum.com.br"
	ProductionBaseURL = "https://payment.aditum.com.br"
)

// Gateway endpoint paths. %s is replaced by the transaction id.
const (
	InitializePath       = "/v2/merchant/auth"
	ChargeAuthorizePath  = "/v2/charge/authorization"
	ChargeCancelPath     = "/v2/charge/cancelation/%s"
	ChargeStatusPath     = "/v2/charge/%s"
	AvailableMethodsPath = "/v2/merchant/payment-methods"
)
