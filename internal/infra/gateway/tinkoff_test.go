//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storent/internal/infra/gateway"
	"storent/internal/pkg/config"
	"storent/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalToken(t *testing.T) {
	t.Run("reference vector", func(t *testing.T) {
		// sha256("100" + "O1" + "p" + "T1") with keys in lexicographic order.
		token := gateway.CanonicalToken(map[string]string{
			"TerminalKey": "T1",
			"Amount":      "100",
			"OrderId":     "O1",
		}, "p")
		assert.Equal(t, "d67e697dec01e1ee364c0af536bcf801dd2f7ba33d0be762f5876296a32598e8", token)
	})

	t.Run("reserved keys do not participate", func(t *testing.T) {
		base := map[string]string{"Amount": "100", "OrderId": "O1", "TerminalKey": "T1"}
		withReserved := map[string]string{
			"Amount":      "100",
			"OrderId":     "O1",
			"TerminalKey": "T1",
			"Token":       "whatever",
			"Receipt":     `{"Email":"a@b.c"}`,
			"DATA":        `{"k":"v"}`,
		}
		assert.Equal(t, gateway.CanonicalToken(base, "p"), gateway.CanonicalToken(withReserved, "p"))
	})

	t.Run("password changes the token", func(t *testing.T) {
		params := map[string]string{"Amount": "100", "OrderId": "O1"}
		assert.NotEqual(t, gateway.CanonicalToken(params, "p"), gateway.CanonicalToken(params, "q"))
	})
}

func TestVerifyNotification(t *testing.T) {
	gw := gateway.NewTinkoffGateway(config.GatewayConfig{
		TerminalKey: "T1",
		Password:    "p",
		BaseURL:     "https://securepay.example.com/v2",
	})

	signedParams := func() map[string]string {
		params := map[string]string{
			"TerminalKey": "T1",
			"OrderId":     "O1",
			"Amount":      "100",
			"Status":      "CONFIRMED",
			"Success":     "true",
		}
		params["Token"] = gateway.CanonicalToken(params, "p")
		return params
	}

	t.Run("valid token", func(t *testing.T) {
		assert.True(t, gw.VerifyNotification(signedParams()))
	})

	t.Run("token comparison ignores case", func(t *testing.T) {
		params := signedParams()
		params["Token"] = strings.ToUpper(params["Token"])
		assert.True(t, gw.VerifyNotification(params))
	})

	t.Run("tampered field", func(t *testing.T) {
		params := signedParams()
		params["Amount"] = "999999"
		assert.False(t, gw.VerifyNotification(params))
	})

	t.Run("wrong password on the other side", func(t *testing.T) {
		params := signedParams()
		params["Token"] = gateway.CanonicalToken(params, "not-p")
		assert.False(t, gw.VerifyNotification(params))
	})

	t.Run("missing token", func(t *testing.T) {
		params := signedParams()
		delete(params, "Token")
		assert.False(t, gw.VerifyNotification(params))
	})
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	req := commands.GatewayInitRequest{
		OrderID:     "order-1",
		AmountCents: 150000,
		Description: "Cell rental",
	}

	t.Run("successful init", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/Init", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"Success":    true,
				"Status":     "NEW",
				"PaymentId":  "12345",
				"PaymentURL": "https://pay.example.com/12345",
			})
		}))
		defer srv.Close()

		gw := gateway.NewTinkoffGateway(config.GatewayConfig{
			TerminalKey: "T1",
			Password:    "p",
			BaseURL:     srv.URL,
		})

		result, err := gw.Init(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "12345", result.GatewayPaymentID)
		assert.Equal(t, "https://pay.example.com/12345", result.PaymentURL)
		assert.Equal(t, "NEW", result.Status)

		expectedToken := gateway.CanonicalToken(map[string]string{
			"TerminalKey": "T1",
			"Amount":      "150000",
			"OrderId":     "order-1",
			"Description": "Cell rental",
		}, "p")
		assert.Equal(t, expectedToken, received["Token"])
	})

	t.Run("rejected init", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"Success":   false,
				"ErrorCode": "9999",
				"Message":   "terminal blocked",
			})
		}))
		defer srv.Close()

		gw := gateway.NewTinkoffGateway(config.GatewayConfig{BaseURL: srv.URL})
		_, err := gw.Init(ctx, req)
		assert.Error(t, err)
	})

	t.Run("non-200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		gw := gateway.NewTinkoffGateway(config.GatewayConfig{BaseURL: srv.URL})
		_, err := gw.Init(ctx, req)
		assert.Error(t, err)
	})
}
