package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Client struct {
	HTTPClient   *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// Ping: sonda de disponibilidade antes de cada tentativa de sync.
// Nunca retorna erro — indisponível é só um bool
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return nil
	}

	zerolog.Ctx(ctx).Info().Msg("🔄 [Portal] Renovando token...")

	payload := map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/auth/token", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro request auth portal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("erro auth portal (status %d): %s", resp.StatusCode, string(errBody))
	}

	var data authResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("erro decode auth portal: %w", err)
	}

	c.token = data.Token
	exp := data.ExpiresIn
	if exp == 0 {
		exp = 3600 // Default 1h
	}
	c.tokenExpiry = time.Now().Add(time.Duration(exp) * time.Second)

	return nil
}

// CreateMember cria o membro no Portal.
// 409 é tratado como sucesso: o Portal devolve o ID já existente no body
func (c *Client) CreateMember(ctx context.Context, input MemberInput) (string, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return "", err
	}

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal membro: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/members", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha request portal: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusConflict {
		var conflict conflictResponse
		if err := json.Unmarshal(body, &conflict); err != nil || conflict.MemberID == "" {
			return "", fmt.Errorf("portal devolveu 409 sem member_id: %s", string(body))
		}
		zerolog.Ctx(ctx).Info().Str("member_id", conflict.MemberID).Msg("ℹ️ [Portal] Membro já existia, reaproveitando ID")
		return conflict.MemberID, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("erro criar membro portal (status %d): %s", resp.StatusCode, string(body))
	}

	var result memberResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("erro decode portal: %w", err)
	}

	return result.ID, nil
}

// UpdateMember atualiza o membro; se o ID não existe mais no Portal (404),
// cai para criação uma única vez dentro da mesma tentativa
func (c *Client) UpdateMember(ctx context.Context, memberID string, input MemberInput) (string, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return "", err
	}

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal membro: %w", err)
	}

	url := fmt.Sprintf("%s/members/%s", c.BaseURL, memberID)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha request portal: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		zerolog.Ctx(ctx).Warn().Str("member_id", memberID).Msg("⚠️ [Portal] Membro sumiu, recriando")
		return c.CreateMember(ctx, input)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("erro atualizar membro portal (status %d): %s", resp.StatusCode, string(body))
	}

	var result memberResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("erro decode portal: %w", err)
	}

	if result.ID == "" {
		return memberID, nil
	}

	return result.ID, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
