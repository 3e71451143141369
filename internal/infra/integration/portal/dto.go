package portal

// MemberInput: payload de criação/atualização de membro no Portal
type MemberInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	ExternalRef string `json:"external_ref"` // remote_id do HubSpot
}

type memberResponse struct {
	ID string `json:"id"`
}

// Resposta 409: o Portal devolve o ID do membro que já existe
type conflictResponse struct {
	Error    string `json:"error"`
	MemberID string `json:"member_id"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
