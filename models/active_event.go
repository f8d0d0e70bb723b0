package models

// ActiveEvent is the in-memory announcement of the session currently running.
// Date is an ISO-8601 timestamp stamped at creation.
type ActiveEvent struct {
	Title    string `json:"title"`
	WifiSSID string `json:"wifiSSID"`
	Date     string `json:"date"`
}
