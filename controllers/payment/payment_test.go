package paymentController_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filings/models"
	"filings/routers"
	"filings/services/payment"
	"filings/session"
	"filings/testutil"
	"filings/wizard"
)

type stubGateway struct {
	result payment.Result
	err    error
	orders []payment.Order
}

func (g *stubGateway) InitPayment(_ context.Context, o payment.Order) (payment.Result, error) {
	g.orders = append(g.orders, o)
	return g.result, g.err
}

func setup(t *testing.T, gw payment.Gateway) (*gorm.DB, *fiber.App, models.User, models.Package) {
	db := testutil.Setup(t)
	prev := payment.Default
	payment.Default = gw
	session.Default = session.NewMemoryStore(session.DefaultTTL)
	t.Cleanup(func() { payment.Default = prev })

	user := testutil.CreateUser(t, db, "buyer@example.com", models.RoleUser)
	var pkg models.Package
	require.NoError(t, db.Where("registration_type = ?", wizard.GST).First(&pkg).Error)
	return db, routers.NewApp(routers.Options{}), user, pkg
}

func lastTxn(t *testing.T, db *gorm.DB) models.PaymentTransaction {
	var txn models.PaymentTransaction
	require.NoError(t, db.Order("id DESC").First(&txn).Error)
	return txn
}

func TestPaymentSuccessOpensDraft(t *testing.T) {
	gw := &stubGateway{result: payment.Result{Success: true, ShowPopup: true, OrderID: "order_1", PaymentID: "pay_1"}}
	db, app, user, pkg := setup(t, gw)

	env := testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{"packageId": pkg.ID})
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	var body struct {
		Success   bool          `json:"success"`
		ShowPopup bool          `json:"showPopup"`
		Ticket    models.Ticket `json:"ticket"`
	}
	env.Decode(t, &body)
	assert.True(t, body.Success)
	assert.True(t, body.ShowPopup)
	assert.Equal(t, models.TicketDraft, body.Ticket.Status)
	assert.Equal(t, pkg.ID, body.Ticket.PackageID)

	require.Len(t, gw.orders, 1)
	assert.Equal(t, pkg.Price, gw.orders[0].Amount)

	txn := lastTxn(t, db)
	assert.Equal(t, models.PaymentCompleted, txn.Status)
	assert.Equal(t, body.Ticket.ID, txn.TicketID)
	assert.Equal(t, "pay_1", txn.PaymentID)

	flags, err := session.Default.Load(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, body.Ticket.ID, flags.EditingTicketID)
}

func TestPaymentCancelledIsSilent(t *testing.T) {
	db, app, user, pkg := setup(t, &stubGateway{err: payment.ErrPaymentCancelled})

	env := testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{"packageId": pkg.ID})
	assert.Equal(t, fiber.StatusOK, env.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "null", string(env.Data))

	assert.Equal(t, models.PaymentCancelled, lastTxn(t, db).Status)
	var tickets int64
	db.Model(&models.Ticket{}).Count(&tickets)
	assert.Zero(t, tickets)
}

func TestPaymentFailureSurfacesMessage(t *testing.T) {
	gwErr := fmt.Errorf("%w: %s", payment.ErrGateway, "Card declined")
	db, app, user, pkg := setup(t, &stubGateway{err: gwErr})

	env := testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{"packageId": pkg.ID})
	assert.Equal(t, fiber.StatusBadGateway, env.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "Card declined", env.Message)
	assert.Equal(t, models.PaymentFailed, lastTxn(t, db).Status)
}

func TestPaymentFailureFallsBackToGenericMessage(t *testing.T) {
	_, app, user, pkg := setup(t, &stubGateway{err: errors.New("connection reset")})

	env := testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{"packageId": pkg.ID})
	assert.Equal(t, fiber.StatusBadGateway, env.Code)
	assert.Equal(t, "Payment failed. Please try again.", env.Message)
}

func TestPaymentUnknownPackage(t *testing.T) {
	_, app, user, _ := setup(t, &stubGateway{})
	env := testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{"packageId": 9999})
	assert.Equal(t, fiber.StatusNotFound, env.Code)

	env = testutil.JSON(t, app, "POST", "/payments/init", testutil.Bearer(t, user), fiber.Map{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, env.Code)
}
