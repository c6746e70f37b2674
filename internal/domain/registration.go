package domain

// RegistrationEvent is one signup attempt as seen by the pre-signup hook.
// RequestedEmail is empty when the platform sent no email attribute.
type RegistrationEvent struct {
	UserPoolID     string        `json:"user_pool_id"`
	UserName       string        `json:"user_name"`
	TriggerSource  string        `json:"trigger_source"`
	Region         string        `json:"region"`
	RequestedEmail string        `json:"requested_email"`
	Response       ResponseFlags `json:"response"`
}

// ResponseFlags are written back to the identity platform. They stay false
// unless the requested email passes validation.
type ResponseFlags struct {
	AutoConfirm     bool `json:"auto_confirm"`
	AutoVerifyEmail bool `json:"auto_verify_email"`
}
