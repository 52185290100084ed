package controllers

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpdateApp() *fiber.App {
	c := &ShipmentController{}
	app := fiber.New()
	app.Put("/shipments/:id", c.UpdateShipment)
	return app
}

func putShipment(app *fiber.App, body string) (int, string, error) {
	req := httptest.NewRequest("PUT", "/shipments/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode, string(payload), nil
}

func TestUpdateShipmentRejectsInvalidInput(t *testing.T) {
	app := newUpdateApp()

	status, body, err := putShipment(app, `{"customer_code":"CUST1","date":"2026-03-01","required_qty":1}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "InvoiceNo")

	status, body, err = putShipment(app, `{"invoice_no":"INV-01","customer_code":"CUST1","required_qty":1}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "Date")
}

// Each request must parse into its own input value: a field present in a
// concurrent request's body must never satisfy this request's validation.
func TestUpdateShipmentInputIsPerRequest(t *testing.T) {
	app := newUpdateApp()

	missingInvoice := `{"customer_code":"CUST1","date":"2026-03-01","required_qty":1}`
	missingDate := `{"invoice_no":"INV-01","customer_code":"CUST1","required_qty":1}`

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			status, body, err := putShipment(app, missingInvoice)
			if assert.NoError(t, err) {
				assert.Equal(t, fiber.StatusBadRequest, status)
				assert.Contains(t, body, "InvoiceNo")
			}
		}()
		go func() {
			defer wg.Done()
			status, body, err := putShipment(app, missingDate)
			if assert.NoError(t, err) {
				assert.Equal(t, fiber.StatusBadRequest, status)
				assert.Contains(t, body, "Date")
			}
		}()
	}
	wg.Wait()
}
