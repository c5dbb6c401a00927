package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/entities"
)

const baseURL = "http://localhost:8080"

func sendRequest(t *testing.T, method, path string, body []byte) *http.Response {
	t.Helper()

	httpReq, err := http.NewRequest(method, baseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)

	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, expectedStatus int, v any) {
	t.Helper()
	defer resp.Body.Close()

	require.Equal(t, expectedStatus, resp.StatusCode)
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
}

func createEvent(t *testing.T, in entities.EventInput) entities.Event {
	t.Helper()

	payload, err := json.Marshal(in)
	require.NoError(t, err)

	var event entities.Event
	decodeResponse(t, sendRequest(t, http.MethodPost, "/events", payload), http.StatusCreated, &event)

	return event
}

func sellTicket(t *testing.T, eventID int64, body string) entities.Ticket {
	t.Helper()

	var ticket entities.Ticket
	resp := sendRequest(t, http.MethodPost, fmt.Sprintf("/events/%d/tickets", eventID), []byte(body))
	decodeResponse(t, resp, http.StatusCreated, &ticket)

	return ticket
}

func redeem(t *testing.T, qrToken, body string, expectedStatus int) entities.RedemptionResult {
	t.Helper()

	var result entities.RedemptionResult
	resp := sendRequest(t, http.MethodPost, "/tickets/qr/"+qrToken+"/redeem", []byte(body))
	if expectedStatus == http.StatusCreated {
		decodeResponse(t, resp, expectedStatus, &result)
	} else {
		decodeResponse(t, resp, expectedStatus, nil)
	}

	return result
}

func undo(t *testing.T, transactionID int64) {
	t.Helper()

	resp := sendRequest(t, http.MethodDelete, fmt.Sprintf("/redemptions/%d", transactionID), nil)
	decodeResponse(t, resp, http.StatusOK, nil)
}

func getTicket(t *testing.T, qrToken string) entities.TicketDetail {
	t.Helper()

	var detail entities.TicketDetail
	decodeResponse(t, sendRequest(t, http.MethodGet, "/tickets/qr/"+qrToken, nil), http.StatusOK, &detail)

	return detail
}

func getJSON(t *assert.CollectT, url string, v any) bool {
	resp, err := http.Get(url)
	if !assert.NoError(t, err) {
		return false
	}
	defer resp.Body.Close()

	if !assert.Equal(t, http.StatusOK, resp.StatusCode) {
		return false
	}

	return assert.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
