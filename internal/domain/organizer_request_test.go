package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var timeZero = time.Time{}

func TestOrganizerRequestStatus_CanTransitionTo(t *testing.T) {
	all := []OrganizerRequestStatus{RequestPending, RequestApproved, RequestRejected}
	for _, from := range all {
		for _, to := range all {
			want := from == RequestPending && to != RequestPending
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}
