package entities

import "fmt"

// Status is the order lifecycle state. The API serializes it as the
// name on the read side and as a small integer on the write side.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusShipped   Status = "Shipped"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in wire-code order.
var Statuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusCancelled}

var statusCodes = map[Status]int{
	StatusPending:   1,
	StatusPaid:      2,
	StatusShipped:   3,
	StatusCancelled: 4,
}

// Code returns the integer the write side expects, 0 for an unknown status.
func (s Status) Code() int {
	return statusCodes[s]
}

func (s Status) Valid() bool {
	_, ok := statusCodes[s]
	return ok
}

func StatusFromCode(code int) (Status, error) {
	for status, c := range statusCodes {
		if c == code {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status code %d", code)
}
