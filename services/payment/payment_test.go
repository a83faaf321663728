package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateway(t *testing.T, status int, body map[string]any) (*Client, *Order) {
	t.Helper()
	var got Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret"), &got
}

func TestInitPayment(t *testing.T) {
	order := Order{Receipt: "r-1", PackageID: 3, Amount: 4999, Currency: "INR"}

	t.Run("redirect", func(t *testing.T) {
		c, sent := gateway(t, http.StatusOK, map[string]any{
			"success": true, "redirect": "https://pay.example/checkout/abc", "orderId": "abc",
		})
		res, err := c.InitPayment(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, Result{Success: true, Redirect: "https://pay.example/checkout/abc", OrderID: "abc"}, res)
		assert.Equal(t, order, *sent)
	})

	t.Run("popup", func(t *testing.T) {
		c, _ := gateway(t, http.StatusOK, map[string]any{"success": true, "showPopup": true})
		res, err := c.InitPayment(context.Background(), order)
		require.NoError(t, err)
		assert.True(t, res.ShowPopup)
	})

	t.Run("cancelled", func(t *testing.T) {
		c, _ := gateway(t, http.StatusBadRequest, map[string]any{"success": false, "message": "Payment cancelled"})
		_, err := c.InitPayment(context.Background(), order)
		assert.ErrorIs(t, err, ErrPaymentCancelled)
	})

	t.Run("declined", func(t *testing.T) {
		c, _ := gateway(t, http.StatusOK, map[string]any{"success": false, "message": "Card declined"})
		_, err := c.InitPayment(context.Background(), order)
		assert.ErrorIs(t, err, ErrGateway)
		assert.Contains(t, err.Error(), "Card declined")
	})

	t.Run("server error without message", func(t *testing.T) {
		c, _ := gateway(t, http.StatusBadGateway, map[string]any{})
		_, err := c.InitPayment(context.Background(), order)
		assert.ErrorIs(t, err, ErrGateway)
		assert.Contains(t, err.Error(), "Bad Gateway")
	})
}

func TestOffline(t *testing.T) {
	res, err := Offline{}.InitPayment(context.Background(), Order{Receipt: "r-9"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "offline-r-9", res.OrderID)
}
