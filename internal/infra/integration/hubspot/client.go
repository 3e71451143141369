package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(token, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetContact busca o estado autoritativo do contato na API v3
func (c *Client) GetContact(ctx context.Context, id string) (*ContactResponse, error) {
	path := fmt.Sprintf("/crm/v3/objects/contacts/%s?properties=email,firstname,lastname,phone", id)

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp ContactResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro decode contato hubspot: %w", err)
	}

	return &resp, nil
}

func (c *Client) GetCompany(ctx context.Context, id string) (*CompanyResponse, error) {
	path := fmt.Sprintf("/crm/v3/objects/companies/%s?properties=name,domain", id)

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp CompanyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro decode empresa hubspot: %w", err)
	}

	return &resp, nil
}

func (c *Client) GetDeal(ctx context.Context, id string) (*DealResponse, error) {
	path := fmt.Sprintf("/crm/v3/objects/deals/%s?properties=dealname,dealstage,amount", id)

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp DealResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro decode negócio hubspot: %w", err)
	}

	return &resp, nil
}

func (c *Client) GetLineItem(ctx context.Context, id string) (*LineItemResponse, error) {
	path := fmt.Sprintf("/crm/v3/objects/line_items/%s?properties=name,quantity,price", id)

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp LineItemResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro decode line item hubspot: %w", err)
	}

	return &resp, nil
}

// GetAssociations lista os IDs associados via API v4
// Ex: GetAssociations(ctx, "contacts", "companies", "123")
func (c *Client) GetAssociations(ctx context.Context, fromType, toType, id string) ([]string, error) {
	path := fmt.Sprintf("/crm/v4/objects/%s/%s/associations/%s", fromType, id, toType)

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp associationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro decode associações hubspot: %w", err)
	}

	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, strconv.FormatInt(r.ToObjectID, 10))
	}

	return ids, nil
}

func (c *Client) CreateContact(ctx context.Context, props map[string]string) (string, error) {
	payload, err := json.Marshal(createObjectRequest{Properties: props})
	if err != nil {
		return "", fmt.Errorf("erro ao marshal contato: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts", payload)
	if err != nil {
		return "", err
	}

	var resp createObjectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("erro decode criação hubspot: %w", err)
	}

	return resp.ID, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, props map[string]string) error {
	payload, err := json.Marshal(createObjectRequest{Properties: props})
	if err != nil {
		return fmt.Errorf("erro ao marshal contato: %w", err)
	}

	path := fmt.Sprintf("/crm/v3/objects/contacts/%s", id)
	_, err = c.doRequest(ctx, http.MethodPatch, path, payload)
	return err
}

// SearchContactByEmail retorna o ID remoto ou "" quando não existe
func (c *Client) SearchContactByEmail(ctx context.Context, email string) (string, error) {
	payload, err := json.Marshal(searchRequest{
		FilterGroups: []filterGroup{
			{Filters: []filter{{PropertyName: "email", Operator: "EQ", Value: email}}},
		},
		Limit: 1,
	})
	if err != nil {
		return "", fmt.Errorf("erro ao marshal busca: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", payload)
	if err != nil {
		return "", err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("erro decode busca hubspot: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", nil
	}

	return resp.Results[0].ID, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	path := fmt.Sprintf("/crm/v3/objects/contacts/%s", id)
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	return err
}

// CheckStatus faz uma chamada barata só para saber se a API responde
func (c *Client) CheckStatus(ctx context.Context) bool {
	_, err := c.doRequest(ctx, http.MethodGet, "/crm/v3/objects/contacts?limit=1", nil)
	return err == nil
}

// doRequest centraliza headers, envio e conversão de erro HTTP em APIError
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha request hubspot: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, convErr := strconv.Atoi(ra); convErr == nil {
				apiErr.RetryAfter = secs
			}
		}
		return nil, apiErr
	}

	return body, nil
}
