package hubspot

// Tipos de objeto da API v3/v4 (usados em URLs e associações)
const (
	ObjectTypeContacts  = "contacts"
	ObjectTypeCompanies = "companies"
	ObjectTypeDeals     = "deals"
	ObjectTypeLineItems = "line_items"
)

type ContactProperties struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type ContactResponse struct {
	ID         string            `json:"id"`
	Properties ContactProperties `json:"properties"`
	Archived   bool              `json:"archived,omitempty"`
	CreatedAt  string            `json:"createdAt,omitempty"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
}

type CompanyProperties struct {
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
}

type CompanyResponse struct {
	ID         string            `json:"id"`
	Properties CompanyProperties `json:"properties"`
}

type DealProperties struct {
	DealName  string `json:"dealname,omitempty"`
	DealStage string `json:"dealstage,omitempty"`
	Amount    string `json:"amount,omitempty"` // HubSpot devolve valores como string
}

type DealResponse struct {
	ID         string         `json:"id"`
	Properties DealProperties `json:"properties"`
}

type LineItemProperties struct {
	Name     string `json:"name,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Price    string `json:"price,omitempty"`
}

type LineItemResponse struct {
	ID         string             `json:"id"`
	Properties LineItemProperties `json:"properties"`
}

// Resposta da API v4 de associações
type associationsResponse struct {
	Results []struct {
		ToObjectID int64 `json:"toObjectId"`
	} `json:"results"`
}

// Busca (POST /search)
type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Total   int               `json:"total"`
	Results []ContactResponse `json:"results"`
}

type createObjectRequest struct {
	Properties map[string]string `json:"properties"`
}

type createObjectResponse struct {
	ID string `json:"id"`
}
