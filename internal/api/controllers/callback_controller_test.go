package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexpay/internal/api/controllers"
	"flexpay/internal/services"
	"flexpay/pkg/utils"
)

type stubCallbackService struct {
	confirmRoute services.Route
	confirmErr   error
	gotParams    services.ConfirmParams
}

func (s *stubCallbackService) Confirm(ctx context.Context, params services.ConfirmParams) (services.Route, error) {
	s.gotParams = params
	return s.confirmRoute, s.confirmErr
}

func (s *stubCallbackService) Cancel(ctx context.Context, orderNumber string) services.Route {
	return services.RouteCart
}

func newCallbackRouter(service services.CallbackService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := controllers.NewCallbackController(service)
	r.POST("/callback/confirm", controller.Confirm)
	r.GET("/callback/cancel", controller.Cancel)
	return r
}

func postConfirm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callback/confirm", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCallbackController_Confirm(t *testing.T) {
	t.Run("redirects to the confirmation step", func(t *testing.T) {
		service := &stubCallbackService{confirmRoute: services.RouteCheckoutConfirmation}
		r := newCallbackRouter(service)

		w := postConfirm(r, url.Values{
			"order_id":          {"R123456789"},
			"checkout_token":    {"TKLKJ71GOP9YSASU"},
			"payment_method_id": {"42"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/checkout/confirm", w.Header().Get("Location"))
		assert.Equal(t, "R123456789", service.gotParams.OrderNumber)
		assert.Equal(t, "TKLKJ71GOP9YSASU", service.gotParams.CheckoutToken)
		assert.Equal(t, "42", service.gotParams.PaymentMethodRef)
	})

	t.Run("redirects to the cart for an abandoned confirmation", func(t *testing.T) {
		service := &stubCallbackService{confirmRoute: services.RouteCart}
		r := newCallbackRouter(service)

		w := postConfirm(r, url.Values{"order_id": {"R123456789"}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/checkout/cart", w.Header().Get("Location"))
	})

	t.Run("redirects to the order detail for a completed order", func(t *testing.T) {
		service := &stubCallbackService{confirmRoute: services.RouteOrderDetail}
		r := newCallbackRouter(service)

		w := postConfirm(r, url.Values{
			"order_id":       {"R123456789"},
			"checkout_token": {"TKLKJ71GOP9YSASU"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/orders/R123456789", w.Header().Get("Location"))
	})

	t.Run("responds 404 for an unknown order", func(t *testing.T) {
		service := &stubCallbackService{confirmErr: utils.ErrOrderNotFound}
		r := newCallbackRouter(service)

		w := postConfirm(r, url.Values{"order_id": {"GONE"}})

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Order not found")
	})

	t.Run("responds 502 when the provider read fails", func(t *testing.T) {
		service := &stubCallbackService{confirmErr: utils.ErrProviderUnavailable}
		r := newCallbackRouter(service)

		w := postConfirm(r, url.Values{"order_id": {"R123456789"}})

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestCallbackController_Cancel(t *testing.T) {
	t.Run("always redirects to the cart", func(t *testing.T) {
		r := newCallbackRouter(&stubCallbackService{})

		req := httptest.NewRequest(http.MethodGet, "/callback/cancel?order_id=R123456789", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/checkout/cart", w.Header().Get("Location"))
	})
}
