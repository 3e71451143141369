package middleware

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const SignatureHeader = "X-HubSpot-Signature"

// VerifySignature implementa o esquema v1 do HubSpot:
// hex(SHA256(secret + rawBody)), comparado em tempo constante.
// O hash é sempre sobre os bytes exatos recebidos — re-serializar o JSON
// mudaria o conteúdo byte a byte e invalidaria a assinatura
func VerifySignature(rawBody []byte, headerSignature, secret string) bool {
	if headerSignature == "" {
		return false
	}

	payload := make([]byte, 0, len(secret)+len(rawBody))
	payload = append(payload, secret...)
	payload = append(payload, rawBody...)

	hash := sha256.Sum256(payload)
	expected := hex.EncodeToString(hash[:])

	return subtle.ConstantTimeCompare([]byte(expected), []byte(headerSignature)) == 1
}

// Signature protege a rota de webhook. Assinatura inválida rejeita o
// lote INTEIRO com 401, antes de qualquer parse do JSON.
// Bypass e secret ausente são desvios explícitos do default seguro:
// sempre logados, nunca silenciosos
func Signature(secret string, bypass bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context())

			if bypass {
				logger.Warn().Msg("⚠️ Verificação de assinatura DESLIGADA (modo não-produção)")
				next.ServeHTTP(w, r)
				return
			}

			if secret == "" {
				logger.Warn().Msg("⚠️ Secret do webhook não configurado, verificação pulada")
				next.ServeHTTP(w, r)
				return
			}

			rawBody, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, `{"status":"error","message":"unreadable body"}`, http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(rawBody))

			if !VerifySignature(rawBody, r.Header.Get(SignatureHeader), secret) {
				logger.Warn().Msg("🚫 Assinatura inválida, lote rejeitado")
				RecordSignatureRejection()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"status":"error","message":"invalid_signature"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
