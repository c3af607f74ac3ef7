package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/yeremiapane/smart-pos/models"
)

func TestFormatCurrencyTHB(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "฿0.00"},
		{7.4, "฿7.40"},
		{192.6, "฿192.60"},
		{1234.5, "฿1,234.50"},
		{1000000, "฿1,000,000.00"},
		{-12.5, "-฿12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrencyTHB(tt.amount))
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{ID: "user2", Username: "cashier1", Role: models.RoleCashier}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user2", claims.UserID)
	assert.Equal(t, models.RoleCashier, claims.Role)
	assert.Equal(t, "cashier1", claims.Subject)
}

func TestParseTokenRejects(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{UserID: "user1"})
	signed, err := foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{})
	signed, err = anonymous.SignedString(JWTSecret)
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestInitTracing(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(&buf)
	require.NoError(t, err)
	defer otel.SetTracerProvider(noop.NewTracerProvider())

	_, span := Tracer().Start(context.Background(), "intent checkout")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"intent checkout"`)
	assert.Contains(t, buf.String(), "smart-pos")
}
