package auth

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/models"
)

// The backend answers in more than one shape: the token shows up as "token"
// or "accessToken", the user record under "user" or as the payload itself,
// and numeric IDs arrive as numbers or strings. These adapters pick one
// canonical form with a fixed priority order.

func parseSession(res *adminapi.Result) (*Session, error) {
	var payload struct {
		Token       string          `json:"token"`
		AccessToken string          `json:"accessToken"`
		User        json.RawMessage `json:"user"`
	}
	if err := res.Decode(&payload); err != nil {
		return nil, fmt.Errorf("unexpected auth response: %w", err)
	}

	token := payload.Token
	if token == "" {
		token = payload.AccessToken
	}
	if token == "" {
		return nil, errors.New("auth response missing token")
	}

	userRaw := payload.User
	if len(userRaw) == 0 {
		userRaw = res.Data
	}
	user, err := parseUser(userRaw)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func parseUser(raw json.RawMessage) (*models.User, error) {
	if len(raw) == 0 {
		return nil, errors.New("auth response missing user")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unexpected user payload: %w", err)
	}

	user := &models.User{
		ID:        stringField(fields, "id"),
		AccountID: stringField(fields, "accountId"),
		Username:  stringField(fields, "username"),
		Email:     stringField(fields, "email"),
		Phone:     stringField(fields, "phone"),
		Balance:   floatField(fields, "balance"),
	}
	if user.AccountID == "" {
		user.AccountID = user.ID
	}
	if user.AccountID == "" {
		return nil, errors.New("user payload missing account id")
	}
	return user, nil
}

// stringField reads a field that may arrive as a JSON string or number
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func floatField(fields map[string]json.RawMessage, key string) float64 {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed float64
		if _, err := fmt.Sscanf(s, "%f", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

func randomSuffix(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}
	return string(result)
}
